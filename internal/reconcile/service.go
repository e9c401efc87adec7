package reconcile

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"github.com/google/uuid"

	"github.com/mhellwig/dormnet/internal/userid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=reconcile
type Repository interface {
	// BankAccountIDByNumber resolves our own account number as printed
	// in the statement. ok is false for unknown accounts.
	BankAccountIDByNumber(ctx context.Context, number string) (int64, bool, error)

	// BeginImport opens the import transaction. The balance read, the
	// mirror read and the insert all run under its snapshot.
	BeginImport(ctx context.Context) (ImportTx, error)

	// UnmatchedActivities returns all activities without a transaction.
	UnmatchedActivities(ctx context.Context) ([]*Activity, error)

	// MatchingPatterns returns all stored team matching patterns.
	MatchingPatterns(ctx context.Context) ([]*MatchingPattern, error)

	// UserExists reports whether a user with the id exists.
	UserExists(ctx context.Context, userID int64) (bool, error)
}

type ImportTx interface {
	// SumAmountPostedBefore returns the summed amount of all activities
	// posted strictly before the cut date.
	SumAmountPostedBefore(ctx context.Context, cut time.Time) (int64, error)

	// ActivitiesPostedSince returns all activities with posted_on at or
	// after the cut date, oldest first.
	ActivitiesPostedSince(ctx context.Context, cut time.Time) ([]*Activity, error)

	// CreateActivities inserts the activities.
	CreateActivities(ctx context.Context, activities []*Activity) error

	Commit() error
	Rollback() error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Import merges parsed statement rows into the stored activity mirror.
// Rows must arrive newest first (descending valid date); the merge
// itself runs oldest first. Nothing is written unless the whole
// statement aligns with the mirror and reproduces expectedBalance.
func (s *Service) Import(ctx context.Context, rows []*ParsedRow, expectedBalance int64, importedAt time.Time) ([]*Activity, error) {
	if len(rows) == 0 {
		return nil, ErrEmptyStatement
	}

	for i := 1; i < len(rows); i++ {
		if rows[i-1].ValidOn.Before(rows[i].ValidOn) {
			return nil, ErrUnordered
		}
	}

	imported, err := s.toActivities(ctx, rows, importedAt)
	if err != nil {
		return nil, err
	}

	// Oldest first, like the stored mirror.
	reverse(imported)

	cut := imported[0].PostedOn
	for _, a := range imported {
		if a.PostedOn.Before(cut) {
			cut = a.PostedOn
		}
	}

	itx, err := s.repo.BeginImport(ctx)
	if err != nil {
		return nil, fmt.Errorf("beginning import: %w", err)
	}
	defer itx.Rollback()

	balance, err := itx.SumAmountPostedBefore(ctx, cut)
	if err != nil {
		return nil, fmt.Errorf("summing prior activity: %w", err)
	}

	persisted, err := itx.ActivitiesPostedSince(ctx, cut)
	if err != nil {
		return nil, fmt.Errorf("listing persisted activity: %w", err)
	}

	var inserts []*Activity
	for _, op := range Opcodes(matchKeys(persisted), matchKeys(imported)) {
		switch op.Tag {
		case OpEqual, OpDelete:
			// Already mirrored, or present in storage only: left untouched.
		case OpInsert:
			for _, a := range imported[op.J1:op.J2] {
				balance += a.Amount
				inserts = append(inserts, a)
			}
		case OpReplace:
			return nil, &ConflictError{
				Persisted: persisted[op.I1:op.I2],
				Imported:  imported[op.J1:op.J2],
			}
		}
	}

	if balance != expectedBalance {
		return nil, &BalanceMismatchError{Computed: balance, Expected: expectedBalance}
	}

	if len(inserts) > 0 {
		if err := itx.CreateActivities(ctx, inserts); err != nil {
			return nil, fmt.Errorf("persisting activities: %w", err)
		}
	}

	if err := itx.Commit(); err != nil {
		return nil, fmt.Errorf("committing import: %w", err)
	}

	slog.Info("bank statement imported",
		"records", len(rows),
		"inserted", len(inserts),
		"balance", balance,
	)

	return inserts, nil
}

func (s *Service) toActivities(ctx context.Context, rows []*ParsedRow, importedAt time.Time) ([]*Activity, error) {
	accountIDs := make(map[string]int64)

	activities := make([]*Activity, 0, len(rows))
	for _, row := range rows {
		id, known := accountIDs[row.OurAccountNumber]
		if !known {
			var ok bool
			var err error
			id, ok, err = s.repo.BankAccountIDByNumber(ctx, row.OurAccountNumber)
			if err != nil {
				return nil, fmt.Errorf("resolving bank account: %w", err)
			}
			if !ok {
				return nil, &RecordError{
					Index: row.Index,
					Raw:   row.restore(),
					Err:   fmt.Errorf("no bank account with number %q", row.OurAccountNumber),
				}
			}
			accountIDs[row.OurAccountNumber] = id
		}

		activities = append(activities, &Activity{
			ID:                 uuid.New(),
			BankAccountID:      id,
			Amount:             row.Amount,
			Reference:          CleanupReference(row.Reference),
			OriginalReference:  row.Reference,
			OtherName:          row.OtherName,
			OtherAccountNumber: row.OtherAccountNumber,
			OtherRoutingNumber: row.OtherRoutingNumber,
			PostedOn:           row.PostedOn,
			ValidOn:            row.ValidOn,
			ImportedAt:         importedAt,
		})
	}

	return activities, nil
}

// matchKeys builds the comparison keys for the alignment. The import
// timestamp is deliberately left out: a re-imported statement must
// compare equal to rows persisted by an earlier run.
func matchKeys(activities []*Activity) []string {
	keys := make([]string, len(activities))
	for i, a := range activities {
		keys[i] = fmt.Sprintf("%d|%d|%s|%s|%s|%s|%s|%s|%s",
			a.Amount, a.BankAccountID, a.Reference, a.OriginalReference,
			a.OtherAccountNumber, a.OtherRoutingNumber, a.OtherName,
			a.PostedOn.Format(time.DateOnly), a.ValidOn.Format(time.DateOnly))
	}
	return keys
}

func reverse(activities []*Activity) {
	for i, j := 0, len(activities)-1; i < j; i, j = i+1, j-1 {
		activities[i], activities[j] = activities[j], activities[i]
	}
}

func (r *ParsedRow) restore() string {
	sign := ""
	if r.Amount < 0 {
		sign = "-"
	}

	return restoreRecord([]string{
		r.OurAccountNumber, r.PostedOn.Format(statementDateLayout),
		r.ValidOn.Format(statementDateLayout), r.Type, r.Reference,
		r.OtherName, r.OtherAccountNumber, r.OtherRoutingNumber,
		fmt.Sprintf("%s%d,%02d", sign, abs(r.Amount)/100, abs(r.Amount)%100), "EUR", r.Info,
	})
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

// UserMatch proposes reconciling an activity with a user whose encoded
// id appears in the reference.
type UserMatch struct {
	Activity *Activity
	UserID   int64
}

// TeamMatch proposes reconciling an activity with a team account via a
// stored matching pattern.
type TeamMatch struct {
	Activity  *Activity
	AccountID int64
}

// MatchActivities proposes a counterpart for every unreconciled
// activity: a user decoded from the reference where possible, else the
// first team account whose pattern matches.
func (s *Service) MatchActivities(ctx context.Context) ([]UserMatch, []TeamMatch, error) {
	activities, err := s.repo.UnmatchedActivities(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("listing unmatched activities: %w", err)
	}

	patterns, err := s.repo.MatchingPatterns(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("listing matching patterns: %w", err)
	}

	compiled := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		re, err := regexp.Compile(p.Pattern)
		if err != nil {
			return nil, nil, fmt.Errorf("compiling matching pattern %d: %w", p.ID, err)
		}
		compiled[i] = re
	}

	var (
		users []UserMatch
		teams []TeamMatch
	)

	for _, activity := range activities {
		if userID, ok := MatchUserReference(activity.Reference, userid.Check); ok {
			exists, err := s.repo.UserExists(ctx, userID)
			if err != nil {
				return nil, nil, fmt.Errorf("checking user %d: %w", userID, err)
			}
			if exists {
				users = append(users, UserMatch{Activity: activity, UserID: userID})
				continue
			}
		}

		if accountID, ok := s.matchTeam(activity, patterns, compiled); ok {
			teams = append(teams, TeamMatch{Activity: activity, AccountID: accountID})
		}
	}

	return users, teams, nil
}

// matchTeam returns the account of the first pattern fitting the
// activity reference. Ties are not broken, only logged.
func (s *Service) matchTeam(activity *Activity, patterns []*MatchingPattern, compiled []*regexp.Regexp) (int64, bool) {
	var (
		accountID int64
		matches   int
	)

	for i, re := range compiled {
		if re.MatchString(activity.Reference) {
			if matches == 0 {
				accountID = patterns[i].AccountID
			}
			matches++
		}
	}

	if matches > 1 {
		slog.Warn("ambiguously matched reference", "reference", activity.Reference)
	}

	return accountID, matches > 0
}
