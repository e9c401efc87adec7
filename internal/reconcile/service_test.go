package reconcile_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/mhellwig/dormnet/internal/reconcile"
)

var importedAt = time.Date(2024, 7, 1, 8, 0, 0, 0, time.UTC)

func parseRows(t *testing.T, records ...string) []*reconcile.ParsedRow {
	t.Helper()

	rows, err := reconcile.ParseStatement(strings.NewReader(statement(records...)))
	require.NoError(t, err)
	return rows
}

// A statement with a debit and a credit balancing each other imports
// cleanly against an empty mirror.
func TestService_Import(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := reconcile.NewMockRepository(ctrl)
	itx := reconcile.NewMockImportTx(ctrl)
	svc := reconcile.NewService(repo)

	rows := parseRows(t,
		`"9999";"28.06.24";"28.06.24";"GUTSCHRIFT";"EREF+123 xyz";"Max";"DE41";"BANK";"5,00";"EUR";""`,
		`"9999";"27.06.24";"27.06.24";"LASTSCHRIFT";"mietzins";"Verwaltung";"DE02";"BANK";"-5,00";"EUR";""`,
	)

	cut := time.Date(2024, 6, 27, 0, 0, 0, 0, time.UTC)

	repo.EXPECT().BankAccountIDByNumber(gomock.Any(), "9999").Return(int64(1), true, nil)
	repo.EXPECT().BeginImport(gomock.Any()).Return(itx, nil)
	itx.EXPECT().SumAmountPostedBefore(gomock.Any(), cut).Return(int64(0), nil)
	itx.EXPECT().ActivitiesPostedSince(gomock.Any(), cut).Return(nil, nil)
	itx.EXPECT().Commit().Return(nil)
	itx.EXPECT().Rollback().Return(nil)
	itx.EXPECT().
		CreateActivities(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, activities []*reconcile.Activity) error {
			require.Len(t, activities, 2)
			// Oldest first.
			assert.Equal(t, int64(-500), activities[0].Amount)
			assert.Equal(t, "mietzins", activities[0].Reference)
			assert.Equal(t, int64(500), activities[1].Amount)
			assert.Equal(t, "EREF+123 xyz", activities[1].OriginalReference)
			assert.Equal(t, int64(1), activities[0].BankAccountID)
			assert.Equal(t, importedAt, activities[0].ImportedAt)
			assert.Nil(t, activities[0].TransactionID)
			return nil
		})

	inserted, err := svc.Import(context.Background(), rows, 0, importedAt)
	require.NoError(t, err)
	assert.Len(t, inserted, 2)
}

// Rows out of descending valid date order abort before anything is
// read or written.
func TestService_Import_Unordered(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := reconcile.NewMockRepository(ctrl)
	svc := reconcile.NewService(repo)

	rows := parseRows(t,
		`"9999";"27.06.24";"27.06.24";"LASTSCHRIFT";"mietzins";"V";"DE02";"BANK";"-5,00";"EUR";""`,
		`"9999";"28.06.24";"28.06.24";"GUTSCHRIFT";"beitrag";"M";"DE41";"BANK";"5,00";"EUR";""`,
	)

	_, err := svc.Import(context.Background(), rows, 0, importedAt)
	assert.ErrorIs(t, err, reconcile.ErrUnordered)
}

// Re-importing a statement that is already fully mirrored inserts
// nothing; the balance check still runs against the stored rows.
func TestService_Import_ExactReimport(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := reconcile.NewMockRepository(ctrl)
	itx := reconcile.NewMockImportTx(ctrl)
	svc := reconcile.NewService(repo)

	rows := parseRows(t,
		`"9999";"28.06.24";"28.06.24";"GUTSCHRIFT";"beitrag";"Max";"DE41";"BANK";"5,00";"EUR";""`,
	)

	mirrored := &reconcile.Activity{
		ID:                 uuid.New(),
		BankAccountID:      1,
		Amount:             500,
		Reference:          "beitrag",
		OriginalReference:  "beitrag",
		OtherName:          "Max",
		OtherAccountNumber: "DE41",
		OtherRoutingNumber: "BANK",
		PostedOn:           time.Date(2024, 6, 28, 0, 0, 0, 0, time.UTC),
		ValidOn:            time.Date(2024, 6, 28, 0, 0, 0, 0, time.UTC),
		ImportedAt:         importedAt.Add(-24 * time.Hour),
	}

	repo.EXPECT().BankAccountIDByNumber(gomock.Any(), "9999").Return(int64(1), true, nil)
	repo.EXPECT().BeginImport(gomock.Any()).Return(itx, nil)
	itx.EXPECT().SumAmountPostedBefore(gomock.Any(), mirrored.PostedOn).Return(int64(100), nil)
	itx.EXPECT().ActivitiesPostedSince(gomock.Any(), mirrored.PostedOn).
		Return([]*reconcile.Activity{mirrored}, nil)
	itx.EXPECT().Commit().Return(nil)
	itx.EXPECT().Rollback().Return(nil)

	inserted, err := svc.Import(context.Background(), rows, 100, importedAt)
	require.NoError(t, err)
	assert.Empty(t, inserted)
}

// A span where statement and mirror disagree is a hard error carrying
// both sides; nothing is written.
func TestService_Import_Conflict(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := reconcile.NewMockRepository(ctrl)
	itx := reconcile.NewMockImportTx(ctrl)
	svc := reconcile.NewService(repo)

	rows := parseRows(t,
		`"9999";"28.06.24";"28.06.24";"GUTSCHRIFT";"beitrag";"Max";"DE41";"BANK";"5,00";"EUR";""`,
	)

	mirrored := &reconcile.Activity{
		BankAccountID: 1,
		Amount:        600,
		Reference:     "something else",
		PostedOn:      time.Date(2024, 6, 28, 0, 0, 0, 0, time.UTC),
		ValidOn:       time.Date(2024, 6, 28, 0, 0, 0, 0, time.UTC),
	}

	repo.EXPECT().BankAccountIDByNumber(gomock.Any(), "9999").Return(int64(1), true, nil)
	repo.EXPECT().BeginImport(gomock.Any()).Return(itx, nil)
	itx.EXPECT().SumAmountPostedBefore(gomock.Any(), gomock.Any()).Return(int64(0), nil)
	itx.EXPECT().ActivitiesPostedSince(gomock.Any(), gomock.Any()).
		Return([]*reconcile.Activity{mirrored}, nil)
	itx.EXPECT().Rollback().Return(nil)

	_, err := svc.Import(context.Background(), rows, 500, importedAt)

	var conflict *reconcile.ConflictError
	require.ErrorAs(t, err, &conflict)
	require.Len(t, conflict.Persisted, 1)
	require.Len(t, conflict.Imported, 1)
	assert.Equal(t, int64(600), conflict.Persisted[0].Amount)
	assert.Equal(t, int64(500), conflict.Imported[0].Amount)
}

func TestService_Import_BalanceMismatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := reconcile.NewMockRepository(ctrl)
	itx := reconcile.NewMockImportTx(ctrl)
	svc := reconcile.NewService(repo)

	rows := parseRows(t,
		`"9999";"28.06.24";"28.06.24";"GUTSCHRIFT";"beitrag";"Max";"DE41";"BANK";"5,00";"EUR";""`,
	)

	repo.EXPECT().BankAccountIDByNumber(gomock.Any(), "9999").Return(int64(1), true, nil)
	repo.EXPECT().BeginImport(gomock.Any()).Return(itx, nil)
	itx.EXPECT().SumAmountPostedBefore(gomock.Any(), gomock.Any()).Return(int64(0), nil)
	itx.EXPECT().ActivitiesPostedSince(gomock.Any(), gomock.Any()).Return(nil, nil)
	itx.EXPECT().Rollback().Return(nil)

	_, err := svc.Import(context.Background(), rows, 9999, importedAt)

	var mismatch *reconcile.BalanceMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, int64(500), mismatch.Computed)
	assert.Equal(t, int64(9999), mismatch.Expected)
}

func TestService_Import_UnknownBankAccount(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := reconcile.NewMockRepository(ctrl)
	svc := reconcile.NewService(repo)

	rows := parseRows(t,
		`"0000";"28.06.24";"28.06.24";"GUTSCHRIFT";"beitrag";"Max";"DE41";"BANK";"5,00";"EUR";""`,
	)

	repo.EXPECT().BankAccountIDByNumber(gomock.Any(), "0000").Return(int64(0), false, nil)

	_, err := svc.Import(context.Background(), rows, 0, importedAt)

	var recErr *reconcile.RecordError
	require.ErrorAs(t, err, &recErr)
	assert.Equal(t, 2, recErr.Index)
	assert.Contains(t, recErr.Error(), `"0000"`)
}

func TestService_MatchActivities(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := reconcile.NewMockRepository(ctrl)
	svc := reconcile.NewService(repo)

	// 1234-82 is a valid type-2 encoded user id.
	byUser := &reconcile.Activity{ID: uuid.New(), Reference: "Beitrag 1234-82"}
	byTeam := &reconcile.Activity{ID: uuid.New(), Reference: "SPENDE sommerfest"}
	unmatched := &reconcile.Activity{ID: uuid.New(), Reference: "voellig unklar"}

	repo.EXPECT().UnmatchedActivities(gomock.Any()).
		Return([]*reconcile.Activity{byUser, byTeam, unmatched}, nil)
	repo.EXPECT().MatchingPatterns(gomock.Any()).
		Return([]*reconcile.MatchingPattern{
			{ID: 1, Pattern: "(?i)spende", AccountID: 77},
		}, nil)
	repo.EXPECT().UserExists(gomock.Any(), int64(1234)).Return(true, nil)

	users, teams, err := svc.MatchActivities(context.Background())
	require.NoError(t, err)

	require.Len(t, users, 1)
	assert.Equal(t, int64(1234), users[0].UserID)
	assert.Equal(t, byUser, users[0].Activity)

	require.Len(t, teams, 1)
	assert.Equal(t, int64(77), teams[0].AccountID)
	assert.Equal(t, byTeam, teams[0].Activity)
}

// With several patterns matching, the first one wins.
func TestService_MatchActivities_AmbiguousTeamMatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := reconcile.NewMockRepository(ctrl)
	svc := reconcile.NewService(repo)

	activity := &reconcile.Activity{ID: uuid.New(), Reference: "SPENDE sommerfest"}

	repo.EXPECT().UnmatchedActivities(gomock.Any()).
		Return([]*reconcile.Activity{activity}, nil)
	repo.EXPECT().MatchingPatterns(gomock.Any()).
		Return([]*reconcile.MatchingPattern{
			{ID: 1, Pattern: "(?i)spende", AccountID: 77},
			{ID: 2, Pattern: "sommerfest", AccountID: 88},
		}, nil)

	users, teams, err := svc.MatchActivities(context.Background())
	require.NoError(t, err)
	assert.Empty(t, users)
	require.Len(t, teams, 1)
	assert.Equal(t, int64(77), teams[0].AccountID)
}
