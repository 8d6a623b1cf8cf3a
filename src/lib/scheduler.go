package lib

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
)

func NewScheduler() (gocron.Scheduler, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		log.Printf("Error initializing Scheduler: %s\n", err.Error())
		return nil, err
	}
	return sched, nil
}

// CreateCronJob registers task to run every interval. Runs never overlap.
func CreateCronJob(sched gocron.Scheduler, name string, interval time.Duration, task func(ctx context.Context)) (string, error) {
	j, err := sched.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(task),
		gocron.WithName(name),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return "", err
	}
	id := j.ID().String()
	log.Printf("Job: %s %s\n", id, j.Name())
	return id, nil
}
