package entity

import (
	"fmt"
	"time"
)

// ActivityTimeLayout ctime uslubidagi vaqt formati
const ActivityTimeLayout = "Mon Jan _2 15:04:05 2006"

// ActivityEntry harakatlar jurnalidagi bitta yozuv
type ActivityEntry struct {
	Timestamp time.Time
	Username  string
	Action    string
}

// String jurnal qatori: [vaqt] User: nom | Action: harakat
func (e ActivityEntry) String() string {
	return fmt.Sprintf("[%s] User: %s | Action: %s", e.Timestamp.Format(ActivityTimeLayout), e.Username, e.Action)
}
