package models

// HonorPoints is the fixed score value of a single peer honor.
const HonorPoints = 5

type HonorMeta struct {
	Label       string `json:"label"`
	Emoji       string `json:"emoji"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

// HonorMetadata carries the display attributes for each honor type.
var HonorMetadata = map[HonorType]HonorMeta{
	HonorGreatTeammate: {
		Label:       "Great Teammate",
		Emoji:       "🤝",
		Description: "Amazing collaboration and teamwork",
		Color:       "#3B82F6",
	},
	HonorProblemSolver: {
		Label:       "Problem Solver",
		Emoji:       "🧠",
		Description: "Tackled tough technical challenges",
		Color:       "#8B5CF6",
	},
	HonorCreativeGenius: {
		Label:       "Creative Genius",
		Emoji:       "💡",
		Description: "Brought innovative ideas to the table",
		Color:       "#F59E0B",
	},
	HonorClutchPlayer: {
		Label:       "Clutch Player",
		Emoji:       "⚡",
		Description: "Delivered when it mattered most",
		Color:       "#EF4444",
	},
	HonorDesignMaster: {
		Label:       "Design Master",
		Emoji:       "🎨",
		Description: "Created beautiful and intuitive designs",
		Color:       "#EC4899",
	},
}

// ValidHonorType rejects honor types outside the fixed enum.
func ValidHonorType(t HonorType) bool {
	_, ok := HonorMetadata[t]
	return ok
}
