package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/justsurfingit/job-board/internal/apiclient"
	"github.com/justsurfingit/job-board/internal/auth"
	"github.com/justsurfingit/job-board/internal/config"
	"github.com/justsurfingit/job-board/internal/dtos"
	"github.com/justsurfingit/job-board/internal/listing"
	"github.com/justsurfingit/job-board/internal/models"
	"github.com/justsurfingit/job-board/internal/repository"
	"github.com/justsurfingit/job-board/internal/ui"
)

var errAdminRequired = errors.New("admin access required")

type app struct {
	cfg     *config.Config
	client  *apiclient.Client
	session *auth.Session
	jobs    repository.JobRepository
	out     *ui.Printer
}

func newApp(cfg *config.Config, storage auth.Storage, out *ui.Printer) *app {
	client := apiclient.New(cfg.APIURL, apiclient.WithHTTPClient(apiclient.NewHTTPClient(cfg.Timeout())))
	sess := auth.NewSession(storage, client)
	client.UseTokenSource(sess)
	return &app{
		cfg:     cfg,
		client:  client,
		session: sess,
		jobs:    repository.NewAPIRepository(client),
		out:     out,
	}
}

func (a *app) run(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "jobs":
		return a.listJobs(ctx, args)
	case "featured":
		return a.featured(ctx)
	case "job":
		return a.showJob(ctx, args)
	case "categories":
		return a.categories(ctx)
	case "apply":
		return a.apply(ctx, args)
	case "contact":
		return a.contact(ctx, args)
	case "login":
		return a.login(ctx, args)
	case "logout":
		a.session.Logout(ctx)
		a.out.Success("Logged out")
		return nil
	case "whoami":
		return a.whoami()
	case "create-job":
		return a.saveJob(ctx, args, false)
	case "update-job":
		return a.saveJob(ctx, args, true)
	case "delete-job":
		return a.deleteJob(ctx, args)
	case "applications":
		return a.applications(ctx, args)
	case "set-status":
		return a.setStatus(ctx, args)
	case "messages":
		return a.messages(ctx, args)
	case "read":
		return a.readMessage(ctx, args)
	case "dashboard":
		return a.dashboard(ctx)
	case "health":
		return a.health(ctx)
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func newFlagSet(name string) *flag.FlagSet {
	return flag.NewFlagSet(name, flag.ContinueOnError)
}

func (a *app) requireAdmin() error {
	if err := a.session.Require(); err != nil {
		return err
	}
	if !a.session.IsAdmin() {
		return errAdminRequired
	}
	return nil
}

func (a *app) listJobs(ctx context.Context, args []string) error {
	fs := newFlagSet("jobs")
	search := fs.String("search", "", "search titles and companies")
	jobType := fs.String("type", listing.Any, "job type: "+strings.Join(listing.JobTypeOptions, ", "))
	location := fs.String("location", listing.Any, "location: "+strings.Join(listing.LocationOptions, "; "))
	sortBy := fs.String("sort", a.cfg.DefaultSort, "sort order: newest, oldest, salary-high, salary-low")
	limit := fs.Int("limit", a.cfg.PageSize, "jobs to fetch")
	retries := fs.Int("retries", 0, "times to retry a failed fetch")
	if err := fs.Parse(args); err != nil {
		return err
	}
	key, ok := listing.ParseSortKey(*sortBy)
	if !ok {
		return fmt.Errorf("unknown sort order %q", *sortBy)
	}

	e := listing.NewEngine(a.jobs)
	e.SetLimit(*limit)
	e.SetSort(key)
	err := e.SetCriteria(ctx, listing.Criteria{Search: *search, Type: *jobType, Location: *location})
	for i := 0; err != nil && i < *retries; i++ {
		a.out.Error("%s", e.ErrorMessage())
		a.out.Info("Retrying...")
		err = e.Retry(ctx)
	}
	if err != nil {
		return err
	}
	shown := e.Displayed()
	if err := a.out.Jobs(shown); err != nil {
		return err
	}
	if len(shown) > 0 {
		a.out.Info("Showing %d jobs", len(shown))
	}
	return nil
}

func (a *app) featured(ctx context.Context) error {
	e := listing.NewEngine(a.jobs)
	if err := e.Refresh(ctx); err != nil {
		return err
	}
	return a.out.Jobs(listing.Featured(e.Displayed(), listing.FeaturedCount))
}

func (a *app) showJob(ctx context.Context, args []string) error {
	fs := newFlagSet("job")
	id := fs.Int("id", 0, "job id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	env, err := a.jobs.GetJob(ctx, *id)
	job, err := apiclient.Result(env, err, "Job not found")
	if err != nil {
		return err
	}
	var related []dtos.Job
	if list, err := a.jobs.ListJobs(ctx, dtos.JobFilters{Category: job.CategoryName, Limit: 10}); err == nil {
		related = listing.Related(list.Data, job, 3)
	}
	return a.out.Job(job, related)
}

func (a *app) categories(ctx context.Context) error {
	env, err := a.jobs.ListCategories(ctx)
	cats, err := apiclient.Result(env, err, "Failed to fetch categories")
	if err != nil {
		return err
	}
	return a.out.Categories(cats)
}

// openAttachment opens path for upload. The caller closes the returned file.
func openAttachment(path string) (*dtos.Attachment, io.Closer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return &dtos.Attachment{Name: filepath.Base(path), Content: f, Size: info.Size()}, f, nil
}

func (a *app) apply(ctx context.Context, args []string) error {
	fs := newFlagSet("apply")
	jobID := fs.Int("job", 0, "job id")
	name := fs.String("name", "", "full name")
	email := fs.String("email", "", "email address")
	phone := fs.String("phone", "", "phone number")
	cover := fs.String("cover", "", "cover letter")
	resume := fs.String("resume", "", "resume file (.pdf, .doc, .docx)")
	payment := fs.String("payment", "", "payment receipt (image or .pdf)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	form := dtos.ApplicationForm{
		JobID: *jobID, ApplicantName: *name, ApplicantEmail: *email, ApplicantPhone: *phone, CoverLetter: *cover,
	}
	if *resume != "" {
		att, closer, err := openAttachment(*resume)
		if err != nil {
			return err
		}
		defer closer.Close()
		form.Resume = att
		a.out.Info("Resume: %s", ui.Attachment(att.Name, att.Size))
	}
	if *payment != "" {
		att, closer, err := openAttachment(*payment)
		if err != nil {
			return err
		}
		defer closer.Close()
		form.PaymentFile = att
		a.out.Info("Payment receipt: %s", ui.Attachment(att.Name, att.Size))
	}

	env, err := a.client.SubmitApplication(ctx, form)
	submitted, err := apiclient.Result(env, err, "Failed to submit application")
	if err != nil {
		return err
	}
	a.out.Success("Application #%d submitted for %s", submitted.ID, submitted.JobTitle)
	return nil
}

func (a *app) contact(ctx context.Context, args []string) error {
	fs := newFlagSet("contact")
	var msg dtos.ContactRequest
	fs.StringVar(&msg.Name, "name", "", "your name")
	fs.StringVar(&msg.Email, "email", "", "your email")
	fs.StringVar(&msg.Phone, "phone", "", "your phone")
	fs.StringVar(&msg.Subject, "subject", models.ContactSubjects[0], "subject: "+strings.Join(models.ContactSubjects, ", "))
	fs.StringVar(&msg.Message, "message", "", "message")
	if err := fs.Parse(args); err != nil {
		return err
	}
	env, err := a.client.SubmitContact(ctx, msg)
	if _, err := apiclient.Result(env, err, "Failed to send message"); err != nil {
		return err
	}
	a.out.Success("Thank you! Your message has been sent.")
	return nil
}

func (a *app) login(ctx context.Context, args []string) error {
	fs := newFlagSet("login")
	username := fs.String("username", "", "username")
	password := fs.String("password", os.Getenv("JOBBOARD_PASSWORD"), "password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	ok, msg := a.session.Login(ctx, *username, *password)
	if !ok {
		return errors.New(msg)
	}
	a.out.Success("%s", msg)
	return nil
}

func (a *app) whoami() error {
	u, ok := a.session.User()
	if !ok {
		return auth.ErrUnauthenticated
	}
	a.out.Info("%s (%s)", u.Username, u.Role)
	return nil
}

func (a *app) saveJob(ctx context.Context, args []string, update bool) error {
	fs := newFlagSet("job")
	id := fs.Int("id", 0, "job id (update only)")
	var req dtos.JobRequest
	fs.StringVar(&req.Title, "title", "", "job title")
	fs.StringVar(&req.Company, "company", "", "company")
	fs.StringVar(&req.Location, "location", "", "location")
	fs.StringVar(&req.Type, "type", models.JobTypeFullTime, "job type: "+strings.Join(models.JobTypes, ", "))
	fs.StringVar(&req.Salary, "salary", "", "salary")
	fs.StringVar(&req.Description, "description", "", "description")
	reqs := fs.String("requirements", "", "comma separated requirements")
	fs.StringVar(&req.Logo, "logo", "", "logo URL")
	fs.StringVar(&req.Category, "category", "", "category")
	fs.StringVar(&req.FoodAccommodation, "food", "", "food accommodation: Provided, Not Provided, Partial")
	fs.StringVar(&req.Gender, "gender", "", "gender: Male, Female, Any")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := a.requireAdmin(); err != nil {
		return err
	}
	req.Requirements = dtos.ParseRequirementsInput(*reqs)

	var (
		env *dtos.Envelope[dtos.Job]
		err error
	)
	if update {
		env, err = a.jobs.UpdateJob(ctx, *id, req)
	} else {
		env, err = a.jobs.CreateJob(ctx, req)
	}
	job, err := apiclient.Result(env, err, "Failed to save job")
	if err != nil {
		return err
	}
	a.out.Success("%s: #%d %s", env.Message, job.ID, job.Title)
	return nil
}

func (a *app) deleteJob(ctx context.Context, args []string) error {
	fs := newFlagSet("delete-job")
	id := fs.Int("id", 0, "job id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := a.requireAdmin(); err != nil {
		return err
	}
	env, err := a.jobs.DeleteJob(ctx, *id)
	if _, err := apiclient.Result(env, err, "Failed to delete job"); err != nil {
		return err
	}
	a.out.Success("Job #%d deleted", *id)
	return nil
}

func (a *app) applications(ctx context.Context, args []string) error {
	fs := newFlagSet("applications")
	var filters dtos.ApplicationFilters
	fs.StringVar(&filters.Status, "status", "", "status: "+strings.Join(models.ApplicationStatuses, ", "))
	fs.IntVar(&filters.Page, "page", 0, "page")
	fs.IntVar(&filters.Limit, "limit", 0, "page size")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := a.requireAdmin(); err != nil {
		return err
	}
	env, err := a.client.ListApplications(ctx, filters)
	apps, err := apiclient.Result(env, err, "Failed to fetch applications")
	if err != nil {
		return err
	}
	if err := a.out.Applications(apps); err != nil {
		return err
	}
	a.out.Pagination(env.Pagination, "applications")
	return nil
}

func (a *app) setStatus(ctx context.Context, args []string) error {
	fs := newFlagSet("set-status")
	id := fs.Int("id", 0, "application id")
	status := fs.String("status", "", "status: "+strings.Join(models.ApplicationStatuses, ", "))
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := a.requireAdmin(); err != nil {
		return err
	}
	env, err := a.client.UpdateApplicationStatus(ctx, *id, *status)
	updated, err := apiclient.Result(env, err, "Failed to update status")
	if err != nil {
		return err
	}
	a.out.Success("Application #%d is now %s", updated.ID, ui.Status(updated.Status))
	return nil
}

func (a *app) messages(ctx context.Context, args []string) error {
	fs := newFlagSet("messages")
	var filters dtos.MessageFilters
	fs.BoolVar(&filters.Unread, "unread", false, "only unread messages")
	fs.IntVar(&filters.Page, "page", 0, "page")
	fs.IntVar(&filters.Limit, "limit", 0, "page size")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := a.requireAdmin(); err != nil {
		return err
	}
	env, err := a.client.ListContactMessages(ctx, filters)
	msgs, err := apiclient.Result(env, err, "Failed to fetch messages")
	if err != nil {
		return err
	}
	if err := a.out.Messages(msgs); err != nil {
		return err
	}
	a.out.Pagination(env.Pagination, "messages")
	return nil
}

func (a *app) readMessage(ctx context.Context, args []string) error {
	fs := newFlagSet("read")
	id := fs.Int("id", 0, "message id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := a.requireAdmin(); err != nil {
		return err
	}
	env, err := a.client.MarkMessageRead(ctx, *id)
	msg, err := apiclient.Result(env, err, "Failed to mark message as read")
	if err != nil {
		return err
	}
	a.out.Message(msg)
	return nil
}

// dashboard asks each list for a single row and reads the totals off the pagination.
func (a *app) dashboard(ctx context.Context) error {
	if err := a.requireAdmin(); err != nil {
		return err
	}
	var totals ui.Totals

	jobsEnv, err := a.jobs.ListJobs(ctx, dtos.JobFilters{Limit: 1})
	jobs, err := apiclient.Result(jobsEnv, err, "Failed to fetch jobs")
	if err != nil {
		return err
	}
	totals.Jobs = total(jobsEnv.Pagination, len(jobs))

	appsEnv, err := a.client.ListApplications(ctx, dtos.ApplicationFilters{Limit: 1})
	apps, err := apiclient.Result(appsEnv, err, "Failed to fetch applications")
	if err != nil {
		return err
	}
	totals.Applications = total(appsEnv.Pagination, len(apps))

	msgsEnv, err := a.client.ListContactMessages(ctx, dtos.MessageFilters{Limit: 1})
	msgs, err := apiclient.Result(msgsEnv, err, "Failed to fetch messages")
	if err != nil {
		return err
	}
	totals.Messages = total(msgsEnv.Pagination, len(msgs))

	return a.out.Dashboard(totals)
}

func total(pg *dtos.Pagination, n int) int {
	if pg == nil {
		return n
	}
	return pg.Total
}

func (a *app) health(ctx context.Context) error {
	env, err := a.client.Health(ctx)
	if _, err := apiclient.Result(env, err, "API is not healthy"); err != nil {
		return err
	}
	a.out.Success("%s (%s)", env.Message, a.client.BaseURL())
	return nil
}
