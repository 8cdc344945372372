package models

// OnboardingStep is one informational screen in the linear onboarding flow.
type OnboardingStep struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// OnboardingSteps is the fixed sequence shown before preference capture.
var OnboardingSteps = []OnboardingStep{
	{
		Title:       "Write just 1 to 3 sentences a day",
		Description: "Keep it simple—no pressure to write long entries.",
		Icon:        "✍️",
	},
	{
		Title:       "Tag your days to spot trends",
		Description: "Add tags like 'Work', 'Friends', or 'Exercise' to see patterns.",
		Icon:        "🏷️",
	},
	{
		Title:       "Look back with your calendar",
		Description: "See all your entries—a few sentences a day add up over time.",
		Icon:        "📅",
	},
	{
		Title:       "New features coming soon!",
		Description: "Get daily reminders, Add custom tags, Search and comment on past entries, Tag your location, Share a photo, See personal trends with charts",
		Icon:        "🚀",
	},
}
