package background

import (
	"context"
	"log"
	"sync"
	"time"

	"craftfolio/internal/services"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
)

// JobScheduler manages background media refresh jobs
type JobScheduler struct {
	scheduler       gocron.Scheduler
	categoryService services.CategoryService
	projectService  services.ProjectService
	refreshInterval time.Duration
	jobs            map[string]gocron.Job
	mu              sync.RWMutex
}

// NewJobScheduler creates a new job scheduler
func NewJobScheduler(categoryService services.CategoryService, projectService services.ProjectService,
	refreshInterval time.Duration) *JobScheduler {

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		log.Fatalf("Failed to create scheduler: %v", err)
	}

	js := &JobScheduler{
		scheduler:       scheduler,
		categoryService: categoryService,
		projectService:  projectService,
		refreshInterval: refreshInterval,
		jobs:            make(map[string]gocron.Job),
	}

	js.registerJobs()

	return js
}

// Start starts the job scheduler
func (js *JobScheduler) Start() error {
	log.Printf("Starting background job scheduler")
	js.scheduler.Start()
	return nil
}

// Stop stops the job scheduler
func (js *JobScheduler) Stop() error {
	log.Printf("Stopping background job scheduler")
	return js.scheduler.Shutdown()
}

// registerJobs registers all background jobs
func (js *JobScheduler) registerJobs() {
	mediaJob, err := js.scheduler.NewJob(
		gocron.DurationJob(js.refreshInterval),
		gocron.NewTask(js.refreshMedia, context.Background()),
		gocron.WithName("media-refresh"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		log.Printf("Failed to create media refresh job: %v", err)
	} else {
		js.jobs["media-refresh"] = mediaJob
	}

	log.Printf("Registered %d background jobs", len(js.jobs))
}

// refreshMedia re-syncs every category thumbnail and project file list
// from the asset store. Individual failures are logged and skipped so a
// single missing folder never stalls the whole sweep.
func (js *JobScheduler) refreshMedia(ctx context.Context) error {
	log.Printf("Starting media refresh")

	categories, err := js.categoryService.List(ctx)
	if err != nil {
		log.Printf("Failed to list categories for media refresh: %v", err)
		return err
	}

	projects, err := js.projectService.List(ctx)
	if err != nil {
		log.Printf("Failed to list projects for media refresh: %v", err)
		return err
	}

	// Limit concurrent asset-store listings
	semaphore := make(chan struct{}, 5)
	var wg sync.WaitGroup

	for _, category := range categories {
		wg.Add(1)
		go func(id uuid.UUID) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			if _, err := js.categoryService.RefreshThumbnail(ctx, id); err != nil {
				log.Printf("Failed to refresh thumbnail for category %s: %v", id.String(), err)
			}
		}(category.ID)
	}

	for _, project := range projects {
		wg.Add(1)
		go func(id uuid.UUID) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			if _, err := js.projectService.RefreshFiles(ctx, id); err != nil {
				log.Printf("Failed to refresh files for project %s: %v", id.String(), err)
			}
		}(project.ID)
	}

	wg.Wait()
	log.Printf("Completed media refresh for %d categories and %d projects", len(categories), len(projects))
	return nil
}

// AddJob adds a custom job to the scheduler
func (js *JobScheduler) AddJob(name string, interval time.Duration, taskFn interface{}, params ...interface{}) error {
	js.mu.Lock()
	defer js.mu.Unlock()

	job, err := js.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(taskFn, params...),
		gocron.WithName(name),
	)

	if err != nil {
		return err
	}

	js.jobs[name] = job
	log.Printf("Added custom job: %s", name)
	return nil
}

// RemoveJob removes a job from the scheduler
func (js *JobScheduler) RemoveJob(name string) error {
	js.mu.Lock()
	defer js.mu.Unlock()

	if job, exists := js.jobs[name]; exists {
		err := js.scheduler.RemoveJob(job.ID())
		delete(js.jobs, name)
		return err
	}

	return nil
}
