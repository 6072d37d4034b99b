package gcode

// Profile describes the dialect of one cutting-table controller.
type Profile struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Metric      bool   `json:"metric"` // coordinates written in mm instead of inches

	StartCode []string `json:"start_code"`
	EndCode   []string `json:"end_code"`

	ScoreOn   string `json:"score_on"`  // lowers the cutting wheel
	ScoreOff  string `json:"score_off"` // raises the cutting wheel
	RapidMove string `json:"rapid_move"`
	FeedMove  string `json:"feed_move"`

	CommentPrefix string `json:"comment_prefix"`
	CommentSuffix string `json:"comment_suffix"` // ")" for Fanuc-style comments

	DecimalPlaces int `json:"decimal_places"`
}

// Built-in cutting-table profiles. The last entry is the fallback.
var Profiles = []Profile{
	{
		Name:          "Fanuc",
		Description:   "ISO controller with parenthesised comments",
		Metric:        true,
		StartCode:     []string{"G90", "G21", "G17"},
		EndCode:       []string{"M5", "G0 X0 Y0", "M30"},
		ScoreOn:       "M3",
		ScoreOff:      "M5",
		RapidMove:     "G0",
		FeedMove:      "G1",
		CommentPrefix: "(",
		CommentSuffix: ")",
		DecimalPlaces: 2,
	},
	{
		Name:          "Metric",
		Description:   "Generic controller, millimetres",
		Metric:        true,
		StartCode:     []string{"G90", "G21"},
		EndCode:       []string{"M5", "G0 X0 Y0", "M2"},
		ScoreOn:       "M3",
		ScoreOff:      "M5",
		RapidMove:     "G0",
		FeedMove:      "G1",
		CommentPrefix: ";",
		DecimalPlaces: 2,
	},
	{
		Name:          "Generic",
		Description:   "Generic controller, inches",
		StartCode:     []string{"G90", "G20"},
		EndCode:       []string{"M5", "G0 X0 Y0", "M2"},
		ScoreOn:       "M3",
		ScoreOff:      "M5",
		RapidMove:     "G0",
		FeedMove:      "G1",
		CommentPrefix: ";",
		DecimalPlaces: 3,
	},
}

// GetProfile returns a profile by name, or the Generic profile if not found.
func GetProfile(name string) Profile {
	for _, p := range Profiles {
		if p.Name == name {
			return p
		}
	}
	return Profiles[len(Profiles)-1]
}

// ProfileNames lists the built-in profile names.
func ProfileNames() []string {
	names := make([]string, 0, len(Profiles))
	for _, p := range Profiles {
		names = append(names, p.Name)
	}
	return names
}
