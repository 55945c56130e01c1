// ABOUTME: Storage keys and the store each key lives in.
// ABOUTME: Sensitive collections go to the secure store; bulk data goes to the plain store.
package storage

// Keys owned by the repositories. No two repositories write the same key.
const (
	KeyMeasurements      = "@yoroi_measurements"
	KeyWorkouts          = "@yoroi_workouts"
	KeyUserSettings      = "@yoroi_user_settings"
	KeyUserBadges        = "@yoroi_user_badges"
	KeyUserClubs         = "@yoroi_user_clubs"
	KeyUserGear          = "@yoroi_user_gear"
	KeyUserBodyStatus    = "@yoroi_user_body_status"
	KeyHydrationLog      = "@yoroi_hydration_log"
	KeyHydrationSettings = "@yoroi_hydration_settings"
	KeyMoodLog           = "@yoroi_mood_log"
	KeyHomeLayout        = "@yoroi_home_layout"
	KeySelectedLogo      = "@yoroi_selected_logo"
)

var secureKeys = map[string]bool{
	KeyMeasurements:      true,
	KeyUserSettings:      true,
	KeyUserBodyStatus:    true,
	KeyHydrationSettings: true,
	KeyMoodLog:           true,
	KeyUserClubs:         true,
}

// AllKeys lists every key in a stable order.
var AllKeys = []string{
	KeyMeasurements, KeyWorkouts, KeyUserSettings, KeyUserBadges,
	KeyUserClubs, KeyUserGear, KeyUserBodyStatus, KeyHydrationLog,
	KeyHydrationSettings, KeyMoodLog, KeyHomeLayout, KeySelectedLogo,
}

// IsSecureKey reports whether key is kept in the secure store.
func IsSecureKey(key string) bool {
	return secureKeys[key]
}
