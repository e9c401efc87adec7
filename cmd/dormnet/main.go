package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/mhellwig/dormnet/internal/arrears"
	arrearsStore "github.com/mhellwig/dormnet/internal/arrears/store"
	"github.com/mhellwig/dormnet/internal/config"
	"github.com/mhellwig/dormnet/internal/database"
	"github.com/mhellwig/dormnet/internal/fee"
	feeStore "github.com/mhellwig/dormnet/internal/fee/store"
	"github.com/mhellwig/dormnet/internal/ledger"
	ledgerStore "github.com/mhellwig/dormnet/internal/ledger/store"
	"github.com/mhellwig/dormnet/internal/membership"
	membershipStore "github.com/mhellwig/dormnet/internal/membership/store"
	"github.com/mhellwig/dormnet/internal/reconcile"
	reconcileStore "github.com/mhellwig/dormnet/internal/reconcile/store"
	"github.com/mhellwig/dormnet/internal/residency"
	residencyStore "github.com/mhellwig/dormnet/internal/residency/store"
	"github.com/mhellwig/dormnet/internal/userid"
	"github.com/mhellwig/dormnet/pkg/logging"
)

const usage = `usage: dormnet <command> [flags]

commands:
  post-fees         post the membership fee to all eligible users
  import-bank-csv   import a bank statement export
  match-activities  suggest user/team matches for unmatched activities
  arrears-sweep     classify and optionally flag/terminate defaulters
  arrears-release   unflag defaulters whose balance is settled
  defaulters-csv    print all members in arrears as CSV
  confirm-all       confirm transactions older than the grace period
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	_ = godotenv.Load()
	logging.Setup()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	ctx := context.Background()
	memStore := membershipStore.New(db)

	memberGroup, err := memStore.GroupByID(ctx, cfg.Groups.MemberID)
	if err != nil {
		slog.Error("failed to load member group", "error", err)
		os.Exit(1)
	}
	pidGroup, err := memStore.GroupByID(ctx, cfg.Groups.PaymentInDefaultID)
	if err != nil {
		slog.Error("failed to load payment-in-default group", "error", err)
		os.Exit(1)
	}

	processor := membership.Actor{ID: cfg.Processor.ID, PermissionLevel: cfg.Processor.PermissionLevel}

	var (
		membershipService = membership.NewService(memStore)
		ledgerService     = ledger.NewService(ledgerStore.New(db))
		feeService        = fee.NewService(feeStore.New(db), memStore, cfg.Finance.DefaultFeeAccountID)
		reconcileService  = reconcile.NewService(reconcileStore.New(db))
		residencyService  = residency.NewService(residencyStore.New(db), membershipService, *memberGroup)
		arrearsService    = arrears.NewService(arrearsStore.New(db), membershipService, feeService,
			residencyService, *pidGroup, *memberGroup)
	)

	switch cmd, args := os.Args[1], os.Args[2:]; cmd {
	case "post-fees":
		err = postFees(ctx, args, feeService, processor)
	case "import-bank-csv":
		err = importBankCSV(ctx, args, reconcileService)
	case "match-activities":
		err = matchActivities(ctx, reconcileService)
	case "arrears-sweep":
		err = arrearsSweep(ctx, args, arrearsService, processor)
	case "arrears-release":
		err = arrearsRelease(ctx, arrearsService, processor)
	case "defaulters-csv":
		err = defaultersCSV(ctx, arrearsService)
	case "confirm-all":
		err = confirmAll(ctx, ledgerService, cfg.Finance.ConfirmGrace)
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	if err != nil {
		slog.Error("command failed", "command", os.Args[1], "error", err)
		os.Exit(1)
	}
}

func postFees(ctx context.Context, args []string, svc *fee.Service, processor membership.Actor) error {
	fs := flag.NewFlagSet("post-fees", flag.ExitOnError)
	date := fs.String("date", "", "date inside the fee period (YYYY-MM-DD, default today)")
	simulate := fs.Bool("simulate", false, "report affected users without posting")
	fs.Parse(args)

	on := time.Now().UTC()
	if *date != "" {
		var err error
		on, err = time.Parse(time.DateOnly, *date)
		if err != nil {
			return fmt.Errorf("parsing date: %w", err)
		}
	}

	f, err := svc.ForDate(ctx, on)
	if err != nil {
		return err
	}

	affected, err := svc.Post(ctx, f, processor.ID, *simulate)
	if err != nil {
		return err
	}

	for _, u := range affected {
		fmt.Printf("%s\t%s\n", userid.EncodeType2(u.UserID), u.Name)
	}
	fmt.Printf("%d users affected by fee %q (simulate=%v)\n", len(affected), f.Name, *simulate)

	return nil
}

func importBankCSV(ctx context.Context, args []string, svc *reconcile.Service) error {
	fs := flag.NewFlagSet("import-bank-csv", flag.ExitOnError)
	file := fs.String("file", "", "bank statement export (CSV)")
	expected := fs.String("expected-balance", "", "statement end balance in euros, e.g. 1234,56")
	fs.Parse(args)

	if *file == "" || *expected == "" {
		return fmt.Errorf("both -file and -expected-balance are required")
	}

	expectedCents, err := parseEuros(*expected)
	if err != nil {
		return fmt.Errorf("parsing expected balance: %w", err)
	}

	f, err := os.Open(*file)
	if err != nil {
		return fmt.Errorf("opening statement: %w", err)
	}
	defer f.Close()

	rows, err := reconcile.ParseStatement(f)
	if err != nil {
		return err
	}

	imported, err := svc.Import(ctx, rows, expectedCents, time.Now().UTC())
	if err != nil {
		return err
	}

	fmt.Printf("imported %d new activities from %d statement rows\n", len(imported), len(rows))

	return nil
}

func matchActivities(ctx context.Context, svc *reconcile.Service) error {
	users, teams, err := svc.MatchActivities(ctx)
	if err != nil {
		return err
	}

	for _, m := range users {
		fmt.Printf("user\t%s\t%d\t%s\n", userid.EncodeType2(m.UserID), m.Activity.Amount, m.Activity.Reference)
	}
	for _, m := range teams {
		fmt.Printf("team\t%d\t%d\t%s\n", m.AccountID, m.Activity.Amount, m.Activity.Reference)
	}

	return nil
}

func arrearsSweep(ctx context.Context, args []string, svc *arrears.Service, processor membership.Actor) error {
	fs := flag.NewFlagSet("arrears-sweep", flag.ExitOnError)
	apply := fs.Bool("apply", false, "flag and terminate instead of only reporting")
	fs.Parse(args)

	c, err := svc.Classify(ctx)
	if err != nil {
		return err
	}

	for _, u := range c.Flag {
		fmt.Printf("flag\t%s\t%s\t%d days\n", userid.EncodeType2(u.UserID), u.Name, u.InDefaultDays)
	}
	for _, u := range c.Terminate {
		fmt.Printf("terminate\t%s\t%s\t%d days\n", userid.EncodeType2(u.UserID), u.Name, u.InDefaultDays)
	}

	if !*apply {
		return nil
	}

	return svc.Apply(ctx, c, processor)
}

func arrearsRelease(ctx context.Context, svc *arrears.Service, processor membership.Actor) error {
	released, err := svc.Release(ctx, processor)
	if err != nil {
		return err
	}

	for _, u := range released {
		fmt.Printf("released\t%s\t%s\n", userid.EncodeType2(u.UserID), u.Name)
	}

	return nil
}

func defaultersCSV(ctx context.Context, svc *arrears.Service) error {
	csv, err := svc.DefaultersCSV(ctx)
	if err != nil {
		return err
	}

	fmt.Print(csv)

	return nil
}

func confirmAll(ctx context.Context, svc *ledger.Service, grace time.Duration) error {
	n, err := svc.ConfirmAllOlderThan(ctx, grace)
	if err != nil {
		return err
	}

	fmt.Printf("confirmed %d transactions\n", n)

	return nil
}

// parseEuros converts a German-formatted euro amount to cents.
func parseEuros(s string) (int64, error) {
	d, err := decimal.NewFromString(strings.Replace(s, ",", ".", 1))
	if err != nil {
		return 0, err
	}

	cents := d.Mul(decimal.NewFromInt(100))
	if !cents.IsInteger() {
		return 0, fmt.Errorf("%q is not an integer number of cents", s)
	}

	return cents.IntPart(), nil
}
