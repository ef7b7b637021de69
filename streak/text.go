package streak

import (
	"fmt"

	"github.com/writewithwrabit/wordstreak/models"
)

// StatusText is the always-visible streak line.
func StatusText(state models.StreakState) string {
	return fmt.Sprintf("Streak: %d days", state.Streak)
}

// NoticeText is shown after a manual check.
func NoticeText(state models.StreakState) string {
	return fmt.Sprintf("Your current streak is %d days!", state.Streak)
}
