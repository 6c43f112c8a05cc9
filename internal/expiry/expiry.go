// Package expiry decides which devices are worth alerting about and what the
// single push message for a run should say.
package expiry

import (
	"fmt"
	"time"

	"github.com/fleetwatch/tailscale-notifier/internal/model"
)

// Window is the lookahead, in days, for treating a key as expiring soon.
const Window = 15

// Buckets holds the devices needing attention, in inventory order.
type Buckets struct {
	// Expiring keys are still valid but lapse within Window days.
	Expiring []model.Device
	// Expired keys are already past their expiry instant.
	Expired []model.Device
}

// DaysUntil returns whole days between now and the device's expiry, truncated
// toward zero. The day a key lapses counts as zero, not as expired.
func DaysUntil(d model.Device, now time.Time) int {
	return int(d.Expires.Sub(now) / (24 * time.Hour))
}

// Classify partitions devices by key expiry relative to now. Devices at least
// Window days out are dropped. The partition is stable: each bucket keeps the
// input order.
func Classify(devices []model.Device, now time.Time) Buckets {
	var b Buckets
	for _, d := range devices {
		days := DaysUntil(d, now)
		if days >= Window {
			continue
		}
		if days < 0 {
			b.Expired = append(b.Expired, d)
		} else {
			b.Expiring = append(b.Expiring, d)
		}
	}
	return b
}

// StatusLine reports one device's standing for diagnostics.
func StatusLine(d model.Device, now time.Time) string {
	days := DaysUntil(d, now)
	switch {
	case days < 0:
		return fmt.Sprintf("%s expired %d days ago", d.Hostname, -days)
	case days == 0:
		return fmt.Sprintf("%s expires today", d.Hostname)
	default:
		return fmt.Sprintf("%s expires in %d days", d.Hostname, days)
	}
}

// Summary selects the one message for a run. Expired devices always win over
// expiring ones; single devices get named, multiples get counted. The count
// message is still produced when both buckets are empty, so a quiet tailnet
// sends "0 devices are expiring soon!" rather than nothing.
func (b Buckets) Summary(now time.Time) string {
	switch {
	case len(b.Expired) == 1:
		return fmt.Sprintf("%s has expired!", b.Expired[0].Hostname)
	case len(b.Expired) > 1:
		return fmt.Sprintf("%d devices are expired!", len(b.Expired))
	case len(b.Expiring) == 1:
		d := b.Expiring[0]
		if days := DaysUntil(d, now); days != 0 {
			return fmt.Sprintf("%s is expiring in %d days!", d.Hostname, days)
		}
		return fmt.Sprintf("%s is expiring today!", d.Hostname)
	default:
		return fmt.Sprintf("%d devices are expiring soon!", len(b.Expiring))
	}
}
