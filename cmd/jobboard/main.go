// Command jobboard browses the job board and runs its admin operations from the
// terminal.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/rs/zerolog/log"

	"github.com/justsurfingit/job-board/internal/apiclient"
	"github.com/justsurfingit/job-board/internal/auth"
	"github.com/justsurfingit/job-board/internal/config"
	"github.com/justsurfingit/job-board/internal/logging"
	"github.com/justsurfingit/job-board/internal/repository"
	"github.com/justsurfingit/job-board/internal/ui"
)

const usage = `usage: jobboard [flags] <command> [command flags]

commands:
  jobs         list jobs (-search, -type, -location, -sort, -limit)
  featured     show the featured jobs
  job          show one job (-id)
  categories   list job categories
  apply        apply for a job (-job, -name, -email, -phone, -cover, -resume, -payment)
  contact      send a contact message (-name, -email, -phone, -subject, -message)
  login        log in (-username, -password or JOBBOARD_PASSWORD)
  logout       log out
  whoami       show the logged in user
  create-job   post a job (admin)
  update-job   replace a job (admin, -id)
  delete-job   delete a job (admin, -id)
  applications list applications (admin, -status, -page, -limit)
  set-status   change an application status (admin, -id, -status)
  messages     list contact messages (admin, -unread, -page, -limit)
  read         mark a contact message read (admin, -id)
  dashboard    show job, application and message totals (admin)
  health       check the API

flags:
`

func main() {
	fs := flag.NewFlagSet("jobboard", flag.ExitOnError)
	configPath := fs.String("config", "", "optional YAML config file")
	apiURL := fs.String("api", "", "API base URL (overrides JOBBOARD_API_URL)")
	demo := fs.Bool("demo", false, "browse the built-in demo jobs instead of the API")
	debug := fs.Bool("debug", false, "enable debug logging")
	fs.Usage = func() {
		fmt.Fprint(fs.Output(), usage)
		fs.PrintDefaults()
	}
	_ = fs.Parse(os.Args[1:])
	if fs.NArg() == 0 {
		fs.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *apiURL != "" {
		cfg.APIURL = *apiURL
	}
	level := cfg.LogLevel
	if *debug {
		level = "debug"
	}
	logging.Setup(level, true)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	a := newApp(cfg, auth.NewFileStorage(cfg.SessionFile), ui.NewPrinter(os.Stdout))
	if *demo {
		a.jobs = repository.NewDemoRepository()
	}
	if err := a.run(ctx, fs.Arg(0), fs.Args()[1:]); err != nil {
		a.out.Error("%s", apiclient.UserMessage(err))
		log.Debug().Err(err).Str("command", fs.Arg(0)).Msg("command failed")
		os.Exit(1)
	}
}
