package main

import (
	"context"
	"log"
	"time"

	"github.com/fleetwatch/tailscale-notifier/internal/config"
	"github.com/fleetwatch/tailscale-notifier/internal/expiry"
	"github.com/fleetwatch/tailscale-notifier/internal/model"
	"github.com/fleetwatch/tailscale-notifier/internal/pushover"
	"github.com/fleetwatch/tailscale-notifier/internal/tailscale"
)

const requestTimeout = 30 * time.Second

func main() {
	cfgPath, err := config.Path()
	if err != nil {
		log.Fatalf("resolve config path: %v", err)
	}
	log.Printf("loading config from %s", cfgPath)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ts, err := tailscale.New(tailscale.DefaultBaseURL, cfg.TailscaleToken, requestTimeout)
	if err != nil {
		log.Fatalf("init tailscale client: %v", err)
	}

	ctx := context.Background()
	log.Printf("fetching %s", ts.DevicesURL(cfg.TailnetName))
	devices, err := ts.Devices(ctx, cfg.TailnetName)
	if err != nil {
		log.Fatalf("fetch devices: %v", err)
	}

	now := time.Now().UTC()
	buckets := expiry.Classify(devices, now)
	logConsidered(devices, now)

	po, err := pushover.New(pushover.DefaultBaseURL, cfg.PushoverToken, cfg.PushoverUserKey, requestTimeout)
	if err != nil {
		log.Fatalf("init pushover client: %v", err)
	}
	resp, err := po.Send(ctx, buckets.Summary(now))
	if err != nil {
		log.Fatalf("send notification: %v", err)
	}
	log.Printf("pushover response: status=%d request=%s", resp.Status, resp.Request)
}

// logConsidered prints one status line per device inside the lookahead
// window, in inventory order.
func logConsidered(devices []model.Device, now time.Time) {
	for _, d := range devices {
		if expiry.DaysUntil(d, now) < expiry.Window {
			log.Print(expiry.StatusLine(d, now))
		}
	}
}
