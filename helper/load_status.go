package helper

import (
	"log"
	"time"

	"github.com/MrFrederic/opensky/database"
	"github.com/MrFrederic/opensky/model"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

var loadStatusScheduler *cron.Cron

const (
	// Loads go on call when departure is this close.
	onCallLookahead = 5 * time.Minute
	// Comparing departure with exact equality at tick boundaries would
	// miss transitions, so both rules carry a tolerance.
	statusTolerance = 1 * time.Minute
)

// UpdateLoadStatuses runs one scheduler pass over all loads:
//
//	forming  -> on_call  when departure falls inside the lookahead window
//	any      -> departed when departure has passed
//
// Every transition is committed independently with a status guard, so a
// failing load is logged and skipped, and re-running a tick is a no-op
// for loads already moved on.
func UpdateLoadStatuses(db *gorm.DB) {
	now := time.Now()

	var formingLoads []model.Load
	if err := db.Where("status = ? AND departure <= ?", model.LoadForming, now.Add(onCallLookahead+statusTolerance)).
		Find(&formingLoads).Error; err != nil {
		log.Printf("load status tick: scanning forming loads: %v", err)
	} else {
		for i := range formingLoads {
			l := &formingLoads[i]
			if err := db.Model(&model.Load{}).
				Where("id = ? AND status = ?", l.ID, model.LoadForming).
				Update("status", model.LoadOnCall).Error; err != nil {
				log.Printf("load %d: setting on_call: %v", l.ID, err)
				continue
			}
			log.Printf("Load %d set to on_call (departure at %s)", l.ID, l.Departure.Format(time.RFC3339))
		}
	}

	var pendingLoads []model.Load
	if err := db.Where("status <> ? AND departure <= ?", model.LoadDeparted, now.Add(statusTolerance)).
		Find(&pendingLoads).Error; err != nil {
		log.Printf("load status tick: scanning pending loads: %v", err)
		return
	}
	for i := range pendingLoads {
		l := &pendingLoads[i]
		if err := db.Model(&model.Load{}).
			Where("id = ? AND status <> ?", l.ID, model.LoadDeparted).
			Update("status", model.LoadDeparted).Error; err != nil {
			log.Printf("load %d: setting departed: %v", l.ID, err)
			continue
		}
		log.Printf("Load %d set to departed (departure at %s)", l.ID, l.Departure.Format(time.RFC3339))
	}
}

func StartLoadStatusScheduler() {
	loadStatusScheduler = cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cron.DefaultLogger),
	))

	_, err := loadStatusScheduler.AddFunc("@every 30s", func() {
		UpdateLoadStatuses(database.DB)
	})
	if err != nil {
		log.Printf("failed to start load status scheduler: %v", err)
		return
	}

	loadStatusScheduler.Start()
	log.Println("Load status scheduler started (every 30s)")
}

func StopLoadStatusScheduler() {
	if loadStatusScheduler != nil {
		loadStatusScheduler.Stop()
		log.Println("Load status scheduler stopped")
	}
}
