package main

import (
	"fmt"
	"log"
	"os"

	"github.com/hiendao/smartclass/core"
	"github.com/hiendao/smartclass/core/comms"
	"github.com/hiendao/smartclass/core/honor"
	"github.com/hiendao/smartclass/core/seed"
	"github.com/hiendao/smartclass/core/student"
	"github.com/hiendao/smartclass/core/task"
	"github.com/hiendao/smartclass/core/user"
	logsvc "github.com/hiendao/smartclass/services/logger"
	"github.com/hiendao/smartclass/storage/snapshot"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()

	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "PORTAL : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)

	db, err := snapshot.Open(conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("opening snapshot store: %v", err), err)
	}

	usrRepo := snapshot.NewUserRepository(db)
	stdRepo := snapshot.NewStudentRepository(db)
	tskRepo := snapshot.NewTaskRepository(db)
	cmsRepo := snapshot.NewCommsRepository(db)

	if err = seed.New(usrRepo, stdRepo, tskRepo, cmsRepo, logger).EnsureSeeded(); err != nil {
		logger.Fatal(fmt.Sprintf("seeding store: %v", err), err)
	}

	usrSvc := user.NewService(usrRepo, logger)
	stdSvc := student.NewService(stdRepo, logger)
	tskSvc := task.NewService(tskRepo, stdRepo, logger)
	cmsSvc := comms.NewService(cmsRepo, logger)
	hnrSvc := honor.NewService(stdRepo, tskSvc, logger)

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Portal initializing : version %q", conf.Build))
	defer logger.Info("Portal stopped")

	usr, err := usrSvc.Authenticate("admin", "123")
	if err != nil {
		logger.Fatal(fmt.Sprintf("demo login failed: %v", err), err)
	}
	logger.Info(fmt.Sprintf("logged in as %s (%s)", usr.Username, usr.Role), usr)

	printRoster(stdSvc, tskSvc, logger)
	printHonorBoard(hnrSvc, logger)
	printFeed(cmsSvc, logger)
}

func printRoster(stdSvc *student.Service, tskSvc *task.Service, logger core.Logger) {
	students, err := stdSvc.QueryAllStudents()
	if err != nil {
		logger.Error(fmt.Sprintf("listing students: %v", err), err)
		return
	}
	fmt.Println("--- Roster ---")
	for _, st := range students {
		prog, err := tskSvc.StudentProgress(st.ID)
		if err != nil {
			logger.Error(fmt.Sprintf("progress for %s: %v", st.ID, err), err)
			continue
		}
		fmt.Printf("%-20s %-10s %3d pts  %d/%d tasks (%d%%)\n",
			st.FullName, stdSvc.ResolveClassName(st.ClassID), st.Points,
			prog.Completed, prog.TotalAssigned, prog.Percent)
	}
}

func printHonorBoard(hnrSvc *honor.Service, logger core.Logger) {
	entries, err := hnrSvc.Standings(honor.AllClasses, honor.MetricPoints)
	if err != nil {
		logger.Error(fmt.Sprintf("honor board: %v", err), err)
		return
	}
	fmt.Println("--- Honor Board ---")
	for _, e := range entries {
		fmt.Printf("#%d %-20s %3d pts %3d%%  %v\n", e.Rank, e.Student.FullName, e.Points, e.Progress.Percent, e.Badges)
	}
}

func printFeed(cmsSvc *comms.Service, logger core.Logger) {
	anns, err := cmsSvc.FeedFor("all")
	if err != nil {
		logger.Error(fmt.Sprintf("announcement feed: %v", err), err)
		return
	}
	fmt.Println("--- Announcements ---")
	for _, a := range anns {
		pin := " "
		if a.Pinned {
			pin = "*"
		}
		fmt.Printf("%s %s: %s\n", pin, a.Title, a.Content)
	}
}
