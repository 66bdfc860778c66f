// Package ui renders job board data for the terminal.
package ui

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pterm/pterm"

	"github.com/justsurfingit/job-board/internal/dtos"
	"github.com/justsurfingit/job-board/internal/listing"
	"github.com/justsurfingit/job-board/internal/models"
)

// Printer writes rendered output to Out. Ages are computed against Now.
type Printer struct {
	Out io.Writer
	Now func() time.Time
}

func NewPrinter(out io.Writer) *Printer {
	return &Printer{Out: out, Now: time.Now}
}

// Salary colours a salary by its leading figure.
func Salary(s string) string {
	if strings.TrimSpace(s) == "" {
		return pterm.Gray("N/A")
	}
	switch n := listing.ParseSalary(s); {
	case n >= 100_000:
		return pterm.Green(s)
	case n >= 70_000:
		return pterm.LightGreen(s)
	case n > 0:
		return pterm.Yellow(s)
	default:
		return pterm.Gray(s)
	}
}

// Status colours an application status.
func Status(s string) string {
	switch s {
	case models.ApplicationStatusPending:
		return pterm.Yellow(s)
	case models.ApplicationStatusReviewed:
		return pterm.Cyan(s)
	case models.ApplicationStatusShortlisted:
		return pterm.Green(s)
	case models.ApplicationStatusRejected:
		return pterm.Red(s)
	default:
		return s
	}
}

// Attachment describes a file about to be uploaded.
func Attachment(name string, size int64) string {
	if size < 0 {
		size = 0
	}
	return fmt.Sprintf("%s (%s)", name, humanize.Bytes(uint64(size)))
}

func (p *Printer) table(data pterm.TableData) error {
	out, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(p.Out, out)
	return err
}

func (p *Printer) Info(format string, args ...any) {
	fmt.Fprintln(p.Out, pterm.FgCyan.Sprintf(format, args...))
}

func (p *Printer) Success(format string, args ...any) {
	fmt.Fprintln(p.Out, pterm.FgGreen.Sprintf(format, args...))
}

func (p *Printer) Error(format string, args ...any) {
	fmt.Fprintln(p.Out, pterm.FgRed.Sprintf(format, args...))
}

// Jobs prints a job table, or a notice when there are none.
func (p *Printer) Jobs(jobs []dtos.Job) error {
	if len(jobs) == 0 {
		p.Info("No jobs found matching your criteria.")
		return nil
	}
	data := pterm.TableData{{"ID", "Title", "Company", "Location", "Type", "Salary", "Posted"}}
	for _, j := range jobs {
		data = append(data, []string{
			strconv.Itoa(j.ID), j.Title, j.Company, j.Location, j.Type, Salary(j.Salary), j.Posted,
		})
	}
	return p.table(data)
}

// Pagination prints the page line of a list reply.
func (p *Printer) Pagination(pg *dtos.Pagination, noun string) {
	if pg == nil {
		return
	}
	fmt.Fprintf(p.Out, "Page %d of %d (%s %s)\n", pg.Page, max(pg.TotalPages, 1), humanize.Comma(int64(pg.Total)), noun)
}

// Job prints a job's full details followed by related jobs.
func (p *Printer) Job(job dtos.Job, related []dtos.Job) error {
	fmt.Fprintln(p.Out, pterm.Bold.Sprint(job.Title))
	fmt.Fprintf(p.Out, "%s · %s · %s\n", job.Company, job.Location, job.Type)

	rows := [][2]string{
		{"Salary", Salary(job.Salary)},
		{"Category", job.Category},
		{"Posted", job.Posted},
		{"Food", job.FoodAccommodation},
		{"Gender", job.Gender},
		{"Logo", job.Logo},
	}
	for _, r := range rows {
		if r[1] == "" {
			continue
		}
		fmt.Fprintf(p.Out, "%-9s %s\n", r[0]+":", r[1])
	}
	fmt.Fprintf(p.Out, "\n%s\n", job.Description)

	if len(job.Requirements) > 0 {
		items := make([]pterm.BulletListItem, 0, len(job.Requirements))
		for _, r := range job.Requirements {
			items = append(items, pterm.BulletListItem{Level: 0, Text: r})
		}
		list, err := pterm.DefaultBulletList.WithItems(items).Srender()
		if err != nil {
			return err
		}
		fmt.Fprintf(p.Out, "\n%s\n%s", pterm.Bold.Sprint("Requirements"), list)
	}

	if len(related) > 0 {
		fmt.Fprintf(p.Out, "\n%s\n", pterm.Bold.Sprint("Related jobs"))
		for _, r := range related {
			fmt.Fprintf(p.Out, "  #%d %s at %s\n", r.ID, r.Title, r.Company)
		}
	}
	return nil
}

func (p *Printer) Categories(cats []dtos.CategoryCount) error {
	data := pterm.TableData{{"Category", "Jobs"}}
	for _, c := range cats {
		data = append(data, []string{c.Name, strconv.Itoa(c.Count)})
	}
	return p.table(data)
}

// Totals are the counts on the admin dashboard.
type Totals struct {
	Jobs         int
	Applications int
	Messages     int
}

func (p *Printer) Dashboard(t Totals) error {
	return p.table(pterm.TableData{
		{"Total Jobs", "Applications", "Messages"},
		{humanize.Comma(int64(t.Jobs)), humanize.Comma(int64(t.Applications)), humanize.Comma(int64(t.Messages))},
	})
}

func (p *Printer) Applications(apps []models.Application) error {
	if len(apps) == 0 {
		p.Info("No applications yet.")
		return nil
	}
	data := pterm.TableData{{"ID", "Job", "Applicant", "Email", "Phone", "Status", "Applied"}}
	for _, a := range apps {
		job := a.JobTitle
		if job == "" {
			job = "#" + strconv.FormatUint(uint64(a.JobID), 10)
		}
		data = append(data, []string{
			strconv.FormatUint(uint64(a.ID), 10), job, a.ApplicantName, a.ApplicantEmail, a.ApplicantPhone,
			Status(a.Status), p.age(a.CreatedAt),
		})
	}
	return p.table(data)
}

func (p *Printer) Messages(msgs []models.ContactMessage) error {
	if len(msgs) == 0 {
		p.Info("No messages.")
		return nil
	}
	data := pterm.TableData{{"ID", "", "From", "Email", "Subject", "Received"}}
	for _, m := range msgs {
		mark := pterm.FgYellow.Sprint("●")
		if m.IsRead {
			mark = " "
		}
		data = append(data, []string{
			strconv.FormatUint(uint64(m.ID), 10), mark, m.Name, m.Email, m.Subject, p.age(m.CreatedAt),
		})
	}
	return p.table(data)
}

// Message prints one contact message in full.
func (p *Printer) Message(m models.ContactMessage) {
	fmt.Fprintf(p.Out, "%s\nFrom: %s <%s>", pterm.Bold.Sprint(m.Subject), m.Name, m.Email)
	if m.Phone != "" {
		fmt.Fprintf(p.Out, " %s", m.Phone)
	}
	fmt.Fprintf(p.Out, "\nReceived %s\n\n%s\n", p.age(m.CreatedAt), m.Message)
}

func (p *Printer) age(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return humanize.RelTime(t, p.Now(), "ago", "from now")
}
