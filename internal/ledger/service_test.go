package ledger_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/mhellwig/dormnet/internal/ledger"
)

func TestService_Simple(t *testing.T) {
	type testCase struct {
		name      string
		params    ledger.SimpleParams
		setupMock func(m *ledger.MockRepository)
		check     func(t *testing.T, tx *ledger.Transaction)
		wantErr   bool
	}

	validOn := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)

	tests := []testCase{
		{
			name: "Success",
			params: ledger.SimpleParams{
				Description:     "Membership fee March 2024",
				DebitAccountID:  10,
				CreditAccountID: 20,
				Amount:          3500,
				AuthorID:        1,
				ValidOn:         &validOn,
			},
			setupMock: func(m *ledger.MockRepository) {
				m.EXPECT().
					CreateTransaction(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			check: func(t *testing.T, tx *ledger.Transaction) {
				require.Len(t, tx.Splits, 2)
				assert.Equal(t, int64(-3500), tx.Splits[0].Amount)
				assert.Equal(t, int64(10), tx.Splits[0].AccountID)
				assert.Equal(t, int64(3500), tx.Splits[1].Amount)
				assert.Equal(t, int64(20), tx.Splits[1].AccountID)
				assert.True(t, tx.Balanced())
				assert.True(t, tx.Confirmed)
				assert.Equal(t, validOn, tx.ValidOn)
				for _, sp := range tx.Splits {
					assert.Equal(t, tx.ID, sp.TransactionID)
					assert.NotEqual(t, uuid.Nil, sp.ID)
				}
			},
		},
		{
			name: "RepoError",
			params: ledger.SimpleParams{
				DebitAccountID:  10,
				CreditAccountID: 20,
				Amount:          100,
			},
			setupMock: func(m *ledger.MockRepository) {
				m.EXPECT().
					CreateTransaction(gomock.Any(), gomock.Any()).
					Return(errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := ledger.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := ledger.NewService(repo)
			got, err := svc.Simple(context.Background(), tt.params)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			require.NotNil(t, got)
			if tt.check != nil {
				tt.check(t, got)
			}
		})
	}
}

func TestService_Complex(t *testing.T) {
	type testCase struct {
		name      string
		splits    []ledger.SplitParams
		setupMock func(m *ledger.MockRepository)
		wantErr   error
	}

	tests := []testCase{
		{
			name: "BalancedThreeWay",
			splits: []ledger.SplitParams{
				{AccountID: 1, Amount: -1000},
				{AccountID: 2, Amount: 400},
				{AccountID: 3, Amount: 600},
			},
			setupMock: func(m *ledger.MockRepository) {
				m.EXPECT().
					CreateTransaction(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, tx *ledger.Transaction) error {
						assert.True(t, tx.Balanced())
						assert.Len(t, tx.Splits, 3)
						return nil
					})
			},
		},
		{
			name: "Unbalanced",
			splits: []ledger.SplitParams{
				{AccountID: 1, Amount: -1000},
				{AccountID: 2, Amount: 999},
			},
			wantErr: ledger.ErrUnbalanced,
		},
		{
			name:    "SingleSplit",
			splits:  []ledger.SplitParams{{AccountID: 1, Amount: 0}},
			wantErr: ledger.ErrTooFewSplits,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := ledger.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := ledger.NewService(repo)
			_, err := svc.Complex(context.Background(), ledger.ComplexParams{
				Description: "rebooking",
				AuthorID:    1,
				Splits:      tt.splits,
			})

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestService_Confirm(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := ledger.NewMockRepository(ctrl)
	svc := ledger.NewService(repo)

	id := uuid.New()

	t.Run("Unconfirmed", func(t *testing.T) {
		repo.EXPECT().GetTransaction(gomock.Any(), id).Return(&ledger.Transaction{ID: id}, nil)
		repo.EXPECT().SetConfirmed(gomock.Any(), id).Return(nil)

		assert.NoError(t, svc.Confirm(context.Background(), id))
	})

	t.Run("AlreadyConfirmed", func(t *testing.T) {
		repo.EXPECT().GetTransaction(gomock.Any(), id).
			Return(&ledger.Transaction{ID: id, Confirmed: true}, nil)

		assert.ErrorIs(t, svc.Confirm(context.Background(), id), ledger.ErrAlreadyConfirmed)
	})
}

func TestService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := ledger.NewMockRepository(ctrl)
	svc := ledger.NewService(repo)

	id := uuid.New()

	t.Run("Unconfirmed", func(t *testing.T) {
		repo.EXPECT().GetTransaction(gomock.Any(), id).Return(&ledger.Transaction{ID: id}, nil)
		repo.EXPECT().DeleteTransaction(gomock.Any(), id).Return(nil)

		assert.NoError(t, svc.Delete(context.Background(), id))
	})

	t.Run("ConfirmedIsImmutable", func(t *testing.T) {
		repo.EXPECT().GetTransaction(gomock.Any(), id).
			Return(&ledger.Transaction{ID: id, Confirmed: true}, nil)

		assert.ErrorIs(t, svc.Delete(context.Background(), id), ledger.ErrAlreadyConfirmed)
	})
}

func TestService_ConfirmAllOlderThan(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := ledger.NewMockRepository(ctrl)
	svc := ledger.NewService(repo)

	repo.EXPECT().
		ConfirmAllPostedBefore(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, cutoff time.Time) (int64, error) {
			// Zero grace falls back to the default one hour window.
			assert.WithinDuration(t, time.Now().UTC().Add(-time.Hour), cutoff, time.Minute)
			return 3, nil
		})

	n, err := svc.ConfirmAllOlderThan(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}
