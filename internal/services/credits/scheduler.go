package credits

import (
	"context"
	"log"

	"github.com/go-co-op/gocron/v2"
)

// StartScheduler arms one recurring refill job per credit system. Each job
// fires on the system's own interval; a failed tick is not retried, the
// next tick simply re-evaluates.
func StartScheduler(systems map[string]Service) (gocron.Scheduler, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	for name, svc := range systems {
		name, svc := name, svc
		_, err := sched.NewJob(
			gocron.DurationJob(svc.Interval()),
			gocron.NewTask(func() {
				out, err := svc.Tick(context.Background())
				if err != nil {
					log.Printf("[credits] %s tick failed: %v", name, err)
					return
				}
				if out.Granted {
					log.Printf("[credits] %s refilled to %d", name, out.Credits)
				}
			}),
		)
		if err != nil {
			return nil, err
		}
	}

	sched.Start()
	return sched, nil
}
