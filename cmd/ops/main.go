// Command ops manages save-file backups for the game's data directory.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/666feiyu666/Ithaca-Journal-win/internal/ops"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "backup":
		err = cmdBackup(os.Args[2:])
	case "restore":
		err = cmdRestore(os.Args[2:])
	case "list":
		err = cmdList(os.Args[2:])
	default:
		printUsage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, os.Args[1]+" failed:", err)
		os.Exit(1)
	}
}

func cmdBackup(args []string) error {
	fs := flag.NewFlagSet("backup", flag.ExitOnError)
	dataDir := fs.String("data", "data", "save directory to back up")
	out := fs.String("out", "", "archive path (default backups/saves-<timestamp>.tar.gz)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	archive := *out
	if archive == "" {
		archive = filepath.Join("backups", fmt.Sprintf("saves-%s.tar.gz", time.Now().Format("20060102-150405")))
	}
	if err := ops.BackupSaves(*dataDir, archive); err != nil {
		return err
	}
	fmt.Println("wrote", archive)
	return nil
}

func cmdRestore(args []string) error {
	fs := flag.NewFlagSet("restore", flag.ExitOnError)
	dataDir := fs.String("data", "data", "save directory to restore into")
	in := fs.String("in", "", "archive path (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" {
		return fmt.Errorf("-in is required")
	}
	if err := ops.RestoreSaves(*in, *dataDir); err != nil {
		return err
	}
	fmt.Println("restored into", *dataDir)
	return nil
}

func cmdList(args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	in := fs.String("in", "", "archive path (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" {
		return fmt.Errorf("-in is required")
	}
	names, err := ops.ListArchive(*in)
	if err != nil {
		return err
	}
	for _, name := range names {
		fmt.Println(name)
	}
	return nil
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `usage:
  ops backup  [-data DIR] [-out FILE]
  ops restore [-data DIR] -in FILE
  ops list    -in FILE`)
}
