package routine

import "time"

// Catalog returns the deployment's routine definitions. Adding a routine here
// is the only supported way to change the catalogue; there is no runtime
// registration.
func Catalog() []Routine {
	return []Routine{
		{
			Name:        "gym",
			Description: "Upload gym proof image/selfie",
			Emoji:       "\U0001F4AA",
			Penalty:     -10.0,
			Deadline:    Weekly(time.Sunday, 23, 59),
			Rule:        Predicate{Kind: WeeklyQuota, MinDays: 5},
		},
		{
			Name:        "socials",
			Description: "Upload socials image/screenshot",
			Emoji:       "\U0001F465",
			Penalty:     -15.0,
			Deadline:    Weekly(time.Sunday, 23, 59),
			Rule:        Predicate{Kind: WeeklyPresence},
		},
		{
			Name:        "food",
			Description: "Upload food image/selfie",
			Emoji:       "\U0001F357",
			Penalty:     -5.0,
			Deadline:    Daily(23, 59),
			Rule:        Predicate{Kind: DailyPresence},
		},
		{
			Name:        "outside",
			Description: "Upload image/selfie of you dressed outside",
			Emoji:       "\U00002600",
			Penalty:     -5.0,
			Deadline:    Daily(7, 0),
			Rule:        Predicate{Kind: DailyPresence},
		},
		{
			Name:        "screentime",
			Description: "Upload image/screenshot of your <=3 hours screentime",
			Emoji:       "\U0000260E",
			Penalty:     -10.0,
			Deadline:    Daily(23, 59),
			Rule:        Predicate{Kind: DailyPresence},
		},
	}
}
