package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Version     string      `yaml:"version" json:"version"`
	Room        RoomConfig  `yaml:"room" json:"room"`
	Rewards     Rewards     `yaml:"rewards" json:"rewards"`
	StarterPack []string    `yaml:"starter_pack" json:"starter_pack"`
	Notebooks   Notebooks   `yaml:"notebooks" json:"notebooks"`
	Milestones  []Milestone `yaml:"milestones" json:"milestones"`
	Fragments   []Fragment  `yaml:"fragments" json:"fragments"`
	Synthesis   []Recipe    `yaml:"synthesis" json:"synthesis"`
	Shop        []ShopItem  `yaml:"shop" json:"shop"`
	Mail        Mail        `yaml:"mail" json:"mail"`
	City        City        `yaml:"city" json:"city"`
}

// RoomConfig tunes the decoration grid and the placement acceptance zones.
type RoomConfig struct {
	GridSize float64   `yaml:"grid_size" json:"grid_size"`
	Wall     WallZone  `yaml:"wall" json:"wall"`
	Floor    FloorZone `yaml:"floor" json:"floor"`
}

// WallZone bounds wall-mounted items: a horizontal band with a V-shaped
// ceiling that drops as |x - center_x| grows.
type WallZone struct {
	MinX         float64 `yaml:"min_x" json:"min_x"`
	MaxX         float64 `yaml:"max_x" json:"max_x"`
	MaxY         float64 `yaml:"max_y" json:"max_y"`
	CenterX      float64 `yaml:"center_x" json:"center_x"`
	CeilingSlope float64 `yaml:"ceiling_slope" json:"ceiling_slope"`
}

// FloorZone bounds floor-standing items: a Manhattan-distance ellipse.
type FloorZone struct {
	CenterX   float64 `yaml:"center_x" json:"center_x"`
	CenterY   float64 `yaml:"center_y" json:"center_y"`
	RadiusX   float64 `yaml:"radius_x" json:"radius_x"`
	RadiusY   float64 `yaml:"radius_y" json:"radius_y"`
	Threshold float64 `yaml:"threshold" json:"threshold"`
}

type Rewards struct {
	// Ink granted on entry confirm is word count divided by this.
	ConfirmDivisor int `yaml:"confirm_divisor" json:"confirm_divisor"`
	// Ink granted on publish is manuscript length divided by this.
	PublishDivisor int `yaml:"publish_divisor" json:"publish_divisor"`
	// Manuscripts shorter than this cannot be published.
	MinManuscriptLen int `yaml:"min_manuscript_len" json:"min_manuscript_len"`
}

type Notebooks struct {
	InboxName   string `yaml:"inbox_name" json:"inbox_name"`
	DefaultIcon string `yaml:"default_icon" json:"default_icon"`
}

type Milestone struct {
	Threshold  int    `yaml:"threshold" json:"threshold"`
	FragmentID string `yaml:"fragment_id" json:"fragment_id"`
}

type Fragment struct {
	ID      string `yaml:"id" json:"id"`
	Title   string `yaml:"title" json:"title"`
	Content string `yaml:"content" json:"content"`
	Origin  string `yaml:"origin" json:"origin"`
	Icon    string `yaml:"icon" json:"icon"`
}

// Recipe synthesizes a complete book once every required fragment is held.
type Recipe struct {
	BookID            string   `yaml:"book_id" json:"book_id"`
	Title             string   `yaml:"title" json:"title"`
	Cover             string   `yaml:"cover" json:"cover"`
	RequiredFragments []string `yaml:"required_fragments" json:"required_fragments"`
	FullContent       string   `yaml:"full_content" json:"full_content"`
}

type ShopItem struct {
	ID          string `yaml:"id" json:"id"`
	Name        string `yaml:"name" json:"name"`
	Price       int    `yaml:"price" json:"price"`
	Description string `yaml:"description" json:"description"`
	Image       string `yaml:"image" json:"image"`
}

type Mail struct {
	TotalDays int      `yaml:"total_days" json:"total_days"`
	Letters   []Letter `yaml:"letters" json:"letters"`
	Prompts   []Prompt `yaml:"prompts" json:"prompts"`
}

type Letter struct {
	Day     int    `yaml:"day" json:"day"`
	Title   string `yaml:"title" json:"title"`
	Sender  string `yaml:"sender" json:"sender"`
	Content string `yaml:"content" json:"content"`
}

// Prompt is the reflection question shown after a day's letter.
type Prompt struct {
	Day  int    `yaml:"day" json:"day"`
	Text string `yaml:"text" json:"text"`
}

type City struct {
	FragmentDropChance float64    `yaml:"fragment_drop_chance" json:"fragment_drop_chance"`
	DropFragmentID     string     `yaml:"drop_fragment_id" json:"drop_fragment_id"`
	Locations          []Location `yaml:"locations" json:"locations"`
}

type Location struct {
	ID          string `yaml:"id" json:"id"`
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
	Background  string `yaml:"background" json:"background"`
}

func (r *RoomConfig) ApplyDefaults() {
	if r.GridSize == 0 {
		r.GridSize = 2.5
	}
	if r.Wall == (WallZone{}) {
		r.Wall = WallZone{MinX: 2, MaxX: 98, MaxY: 100, CenterX: 50, CeilingSlope: 0.45}
	}
	if r.Floor == (FloorZone{}) {
		r.Floor = FloorZone{CenterX: 50, CenterY: 65, RadiusX: 45, RadiusY: 35, Threshold: 1.5}
	}
}

func (r *Rewards) ApplyDefaults() {
	if r.ConfirmDivisor == 0 {
		r.ConfirmDivisor = 10
	}
	if r.PublishDivisor == 0 {
		r.PublishDivisor = 2
	}
	if r.MinManuscriptLen == 0 {
		r.MinManuscriptLen = 10
	}
}

func (n *Notebooks) ApplyDefaults() {
	if n.InboxName == "" {
		n.InboxName = "Everyday Scraps"
	}
	if n.DefaultIcon == "" {
		n.DefaultIcon = "assets/images/booksheet/notebook.png"
	}
}

func (m *Mail) ApplyDefaults() {
	if m.TotalDays == 0 {
		m.TotalDays = 21
	}
}

func (c *City) ApplyDefaults() {
	if c.FragmentDropChance == 0 {
		c.FragmentDropChance = 0.3
	}
	if c.DropFragmentID == "" {
		c.DropFragmentID = "frag_pineapple_03"
	}
	if len(c.Locations) == 0 {
		c.Locations = []Location{
			{ID: "street", Name: "Apartment Street", Description: "A quiet residential block. A cat passes by now and then.", Background: "assets/images/city/street0.png"},
			{ID: "subway", Name: "Subway Entrance", Description: "A crowded mouth into the underground.", Background: "assets/images/city/street1.png"},
			{ID: "shops", Name: "Shopping Street", Description: "An old street that smells of oden and rain.", Background: "assets/images/city/street2.png"},
			{ID: "mall", Name: "Department Store", Description: "A bright maze of consumerism.", Background: "assets/images/city/street3.png"},
			{ID: "university", Name: "University", Description: "Bookish air and borrowed youth.", Background: "assets/images/city/street4.png"},
			{ID: "stadium", Name: "Stadium", Description: "An enormous concrete shell.", Background: "assets/images/city/street5.png"},
		}
	}
}

func (c *Config) ApplyDefaults() {
	c.Room.ApplyDefaults()
	c.Rewards.ApplyDefaults()
	c.Notebooks.ApplyDefaults()
	c.Mail.ApplyDefaults()
	c.City.ApplyDefaults()

	if len(c.StarterPack) == 0 {
		c.StarterPack = []string{
			"item_desk_default",
			"item_bookshelf_default",
			"item_rug_default",
			"item_chair_default",
			"item_bed_default",
		}
	}
	if len(c.Milestones) == 0 {
		c.Milestones = []Milestone{
			{Threshold: 20, FragmentID: "frag_pineapple_01"},
			{Threshold: 200, FragmentID: "frag_pineapple_02"},
			{Threshold: 2000, FragmentID: "frag_pineapple_03"},
		}
	}
	if len(c.Fragments) == 0 {
		c.Fragments = []Fragment{
			{ID: "frag_pineapple_01", Title: "Torn Diary Page 1", Content: "...", Origin: "word milestone", Icon: "assets/images/item/note1.png"},
			{ID: "frag_pineapple_02", Title: "Torn Diary Page 2", Content: "...", Origin: "word milestone", Icon: "assets/images/item/note1.png"},
			{ID: "frag_pineapple_03", Title: "Torn Diary Page 3", Content: "...", Origin: "late milestone or exploring", Icon: "assets/images/item/note1.png"},
		}
	}
	if len(c.Synthesis) == 0 {
		c.Synthesis = []Recipe{
			{
				BookID:            "book_pineapple_diary_complete",
				Title:             "The Pineapple Diary",
				Cover:             "assets/images/booksheet/booksheet1.png",
				RequiredFragments: []string{"frag_pineapple_01", "frag_pineapple_02", "frag_pineapple_03"},
				FullContent:       "# The Pineapple Diary (complete)\n\n...",
			},
		}
	}
	if len(c.Shop) == 0 {
		c.Shop = []ShopItem{
			{ID: "item_plant_01", Name: "Sofa", Price: 50, Description: "Lie down already.", Image: "assets/images/room/sofa.png"},
			{ID: "item_rug_blue", Name: "Persian Rug", Price: 80, Description: "Soft under your feet.", Image: "assets/images/room/rug2.png"},
			{ID: "item_cat_orange", Name: "Orange Cat", Price: 100, Description: "Eats a lot. Still adorable.", Image: "assets/images/room/cat.png"},
		}
	}
}

// Load reads a YAML config file. A missing file is not an error: the game is
// expected to run on defaults alone.
func Load(path string) (*Config, error) {
	var c Config
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			c.ApplyDefaults()
			return &c, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}
	c.ApplyDefaults()
	return &c, nil
}
