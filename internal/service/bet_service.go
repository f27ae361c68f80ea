// internal/service/bet_service.go
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"paperbook/internal/domain"
	"paperbook/internal/repository"
	"paperbook/internal/util"
	"paperbook/pkg/db"
	"paperbook/pkg/oddsmath"
)

// GameResultProvider supplies completed game results for automatic
// settlement. The odds feed client implements this.
type GameResultProvider interface {
	GetCompletedGames(ctx context.Context, sportKey string, daysFrom int) ([]domain.CompletedGame, error)
}

// PlaceBetInput carries everything needed to place a single bet. Odds
// are American.
type PlaceBetInput struct {
	EventID      string
	SportKey     string
	HomeTeam     string
	AwayTeam     string
	CommenceTime time.Time
	BetType      domain.BetType
	Selection    string
	Odds         float64
	Stake        decimal.Decimal
}

// ParlayLegInput is one selection of a parlay to be placed.
type ParlayLegInput struct {
	EventID      string
	SportKey     string
	HomeTeam     string
	AwayTeam     string
	CommenceTime time.Time
	BetType      domain.BetType
	Selection    string
	Odds         float64
}

// BetStats summarizes a user's betting record. Pushed and cancelled
// bets count as settled but neither won nor lost.
type BetStats struct {
	TotalBets    int             `json:"total_bets"`
	SettledBets  int             `json:"settled_bets"`
	PendingBets  int             `json:"pending_bets"`
	WonBets      int             `json:"won_bets"`
	LostBets     int             `json:"lost_bets"`
	TotalStaked  decimal.Decimal `json:"total_staked"`
	TotalReturns decimal.Decimal `json:"total_returns"`
	ProfitLoss   decimal.Decimal `json:"profit_loss"`
	ROI          decimal.Decimal `json:"roi"`
	WinRate      decimal.Decimal `json:"win_rate"`
}

// ProfitPoint is one day of realized profit for charting, with the
// running total up to that day.
type ProfitPoint struct {
	Date       string          `json:"date"`
	Profit     decimal.Decimal `json:"profit"`
	Cumulative decimal.Decimal `json:"cumulative"`
}

// SportStats is a user's record within a single sport.
type SportStats struct {
	Sport  string          `json:"sport"`
	Bets   int             `json:"bets"`
	Wins   int             `json:"wins"`
	Losses int             `json:"losses"`
	Profit decimal.Decimal `json:"profit"`
}

// AutoSettleResult is the per-wager outcome of an auto-settle pass.
// Status stays pending when the game has not finished or the selection
// could not be resolved.
type AutoSettleResult struct {
	BetID     int64            `json:"bet_id"`
	Selection string           `json:"selection"`
	Status    domain.BetStatus `json:"status"`
	Result    string           `json:"result,omitempty"`
}

// AutoSettleReport summarizes an auto-settle pass.
type AutoSettleReport struct {
	Settled    int                `json:"settled"`
	Results    []AutoSettleResult `json:"results"`
	NewBalance decimal.Decimal    `json:"new_balance"`
}

// BetService defines the interface for wager lifecycle business logic.
type BetService interface {
	// PlaceBet debits the stake and creates a pending bet atomically.
	PlaceBet(ctx context.Context, userID int64, input PlaceBetInput) (*domain.Bet, *domain.Wallet, error)
	// PlaceParlay debits the stake and creates a pending parlay with
	// its legs atomically. At least two legs are required.
	PlaceParlay(ctx context.Context, userID int64, stake decimal.Decimal, legs []ParlayLegInput) (*domain.Parlay, *domain.Wallet, error)
	// GetBets returns a user's bets, newest first. limit <= 0 means all.
	GetBets(ctx context.Context, userID int64, limit int) ([]domain.Bet, error)
	// GetPendingBets returns a user's open bets.
	GetPendingBets(ctx context.Context, userID int64) ([]domain.Bet, error)
	// GetParlays returns a user's parlays with legs, newest first.
	GetParlays(ctx context.Context, userID int64, limit int) ([]domain.Parlay, error)
	// SettleBet records a manual settlement decision (won, lost, push,
	// or cancelled) and pays out or refunds accordingly.
	SettleBet(ctx context.Context, userID, betID int64, status domain.BetStatus, result *string) (*domain.Bet, error)
	// SettleParlay records a manual settlement decision for a parlay.
	SettleParlay(ctx context.Context, userID, parlayID int64, status domain.BetStatus) (*domain.Parlay, error)
	// SettleParlayLeg updates a leg's bookkeeping status. No money moves.
	SettleParlayLeg(ctx context.Context, userID, legID int64, status domain.BetStatus) error
	// AutoSettle resolves pending bets against real game results.
	AutoSettle(ctx context.Context, userID int64) (*AutoSettleReport, error)
	// GetStats summarizes the user's betting record.
	GetStats(ctx context.Context, userID int64) (*BetStats, error)
	// GetProfitHistory returns daily realized profit for the last days days.
	GetProfitHistory(ctx context.Context, userID int64, days int) ([]ProfitPoint, error)
	// GetStatsBySport breaks the record down per sport.
	GetStatsBySport(ctx context.Context, userID int64) ([]SportStats, error)
}

type betService struct {
	dbBeginner      db.DBTxBeginner
	dbExecutor      repository.DBExecutor
	betRepo         repository.BetRepository
	parlayRepo      repository.ParlayRepository
	walletRepo      repository.WalletRepository
	transactionRepo repository.TransactionRepository
	preferencesRepo repository.PreferencesRepository
	resultProvider  GameResultProvider
	ledger          *Ledger
	limitsEnforced  bool
	beginTx         db.BeginTxFunc
	commitTx        db.CommitTxFunc
	rollbackTx      db.RollbackTxFunc
}

// NewBetService creates a new instance of BetService. limitsEnforced
// turns the user's preference limits from advisory into hard checks.
func NewBetService(
	dbBeginner db.DBTxBeginner,
	dbExecutor repository.DBExecutor,
	betRepo repository.BetRepository,
	parlayRepo repository.ParlayRepository,
	walletRepo repository.WalletRepository,
	transactionRepo repository.TransactionRepository,
	preferencesRepo repository.PreferencesRepository,
	resultProvider GameResultProvider,
	limitsEnforced bool,
	beginTx db.BeginTxFunc,
	commitTx db.CommitTxFunc,
	rollbackTx db.RollbackTxFunc,
) BetService {
	return &betService{
		dbBeginner:      dbBeginner,
		dbExecutor:      dbExecutor,
		betRepo:         betRepo,
		parlayRepo:      parlayRepo,
		walletRepo:      walletRepo,
		transactionRepo: transactionRepo,
		preferencesRepo: preferencesRepo,
		resultProvider:  resultProvider,
		ledger:          NewLedger(walletRepo, transactionRepo),
		limitsEnforced:  limitsEnforced,
		beginTx:         beginTx,
		commitTx:        commitTx,
		rollbackTx:      rollbackTx,
	}
}

func validateBetType(t domain.BetType) error {
	switch t {
	case domain.BetTypeMoneyline, domain.BetTypeSpread, domain.BetTypeTotal:
		return nil
	default:
		return fmt.Errorf("%w: unknown bet type %q", util.ErrInvalidInput, t)
	}
}

// PlaceBet debits the stake and creates the bet in one transaction.
func (s *betService) PlaceBet(ctx context.Context, userID int64, input PlaceBetInput) (*domain.Bet, *domain.Wallet, error) {
	if input.Stake.LessThanOrEqual(decimal.Zero) {
		return nil, nil, util.ErrInvalidInput
	}
	if input.EventID == "" || input.Selection == "" {
		return nil, nil, util.ErrInvalidInput
	}
	if err := validateBetType(input.BetType); err != nil {
		return nil, nil, err
	}

	potentialPayout, err := oddsmath.PotentialPayout(input.Stake, input.Odds)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s", util.ErrInvalidInput, err)
	}

	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, nil, fmt.Errorf("place bet: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, nil, fmt.Errorf("place bet: transaction controller does not implement DBExecutor")
	}

	wallet, err := s.ledger.GetOrCreateWalletLocked(ctx, txExecutor, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("place bet: %w", err)
	}

	if err := s.checkBetLimits(ctx, txExecutor, userID, input.Stake); err != nil {
		return nil, nil, err
	}

	bet := domain.NewBet(
		userID,
		input.EventID, input.SportKey, input.HomeTeam, input.AwayTeam,
		input.CommenceTime,
		input.BetType,
		input.Selection,
		decimal.NewFromFloat(input.Odds), input.Stake, potentialPayout,
	)
	if err := s.betRepo.CreateBet(ctx, txExecutor, bet); err != nil {
		return nil, nil, fmt.Errorf("place bet: failed to create bet: %w", err)
	}

	refType := domain.ReferenceTypeBet
	description := fmt.Sprintf("Bet placed: %s @ %s", input.Selection, oddsmath.FormatAmerican(input.Odds))
	if _, err := s.ledger.Debit(ctx, txExecutor, wallet, input.Stake,
		domain.TransactionTypeBetPlaced, &bet.ID, &refType, description); err != nil {
		return nil, nil, fmt.Errorf("place bet: %w", err)
	}

	if err := s.commitTx(txController); err != nil {
		return nil, nil, fmt.Errorf("place bet: failed to commit transaction: %w", err)
	}

	return bet, wallet, nil
}

// checkBetLimits enforces the user's preference limits when enabled.
// Users without a preferences row are unrestricted.
func (s *betService) checkBetLimits(ctx context.Context, q repository.DBExecutor, userID int64, stake decimal.Decimal) error {
	if !s.limitsEnforced {
		return nil
	}

	prefs, err := s.preferencesRepo.GetPreferencesByUserID(ctx, q, userID)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed to load preferences for limit check: %w", err)
	}

	if stake.GreaterThan(prefs.MaxBetAmount) {
		return fmt.Errorf("%w: stake %s exceeds max bet amount %s",
			util.ErrBetLimitExceeded, stake, prefs.MaxBetAmount)
	}

	dayStart := time.Now().UTC().Truncate(24 * time.Hour)
	betTotal, err := s.betRepo.SumStakeSince(ctx, q, userID, dayStart)
	if err != nil {
		return fmt.Errorf("failed to total today's bet stakes: %w", err)
	}
	parlayTotal, err := s.parlayRepo.SumStakeSince(ctx, q, userID, dayStart)
	if err != nil {
		return fmt.Errorf("failed to total today's parlay stakes: %w", err)
	}

	if betTotal.Add(parlayTotal).Add(stake).GreaterThan(prefs.DailyBetLimit) {
		return fmt.Errorf("%w: stake %s would exceed daily limit %s",
			util.ErrBetLimitExceeded, stake, prefs.DailyBetLimit)
	}
	return nil
}

// PlaceParlay debits the stake and creates the parlay and its legs in
// one transaction.
func (s *betService) PlaceParlay(ctx context.Context, userID int64, stake decimal.Decimal, legs []ParlayLegInput) (*domain.Parlay, *domain.Wallet, error) {
	if stake.LessThanOrEqual(decimal.Zero) {
		return nil, nil, util.ErrInvalidInput
	}
	if len(legs) < 2 {
		return nil, nil, util.ErrInvalidParlay
	}

	legOdds := make([]float64, 0, len(legs))
	for _, leg := range legs {
		if leg.EventID == "" || leg.Selection == "" {
			return nil, nil, util.ErrInvalidInput
		}
		if err := validateBetType(leg.BetType); err != nil {
			return nil, nil, err
		}
		legOdds = append(legOdds, leg.Odds)
	}

	parlayOdds, err := oddsmath.CombineParlayOdds(legOdds)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s", util.ErrInvalidInput, err)
	}
	potentialPayout, err := oddsmath.PotentialPayout(stake, parlayOdds.CombinedAmerican)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s", util.ErrInvalidInput, err)
	}

	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, nil, fmt.Errorf("place parlay: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, nil, fmt.Errorf("place parlay: transaction controller does not implement DBExecutor")
	}

	wallet, err := s.ledger.GetOrCreateWalletLocked(ctx, txExecutor, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("place parlay: %w", err)
	}

	if err := s.checkBetLimits(ctx, txExecutor, userID, stake); err != nil {
		return nil, nil, err
	}

	parlay := domain.NewParlay(userID, stake, decimal.NewFromFloat(parlayOdds.CombinedAmerican), potentialPayout)
	parlayLegs := make([]domain.ParlayLeg, 0, len(legs))
	for _, leg := range legs {
		parlayLegs = append(parlayLegs, domain.ParlayLeg{
			EventID:      leg.EventID,
			SportKey:     leg.SportKey,
			HomeTeam:     leg.HomeTeam,
			AwayTeam:     leg.AwayTeam,
			CommenceTime: leg.CommenceTime,
			BetType:      leg.BetType,
			Selection:    leg.Selection,
			Odds:         decimal.NewFromFloat(leg.Odds),
			Status:       domain.BetStatusPending,
			CreatedAt:    time.Now().UTC(),
		})
	}

	if err := s.parlayRepo.CreateParlay(ctx, txExecutor, parlay, parlayLegs); err != nil {
		return nil, nil, fmt.Errorf("place parlay: failed to create parlay: %w", err)
	}
	parlay.Legs = parlayLegs

	refType := domain.ReferenceTypeParlay
	description := fmt.Sprintf("%d-leg parlay placed @ %s", len(legs), oddsmath.FormatAmerican(parlayOdds.CombinedAmerican))
	if _, err := s.ledger.Debit(ctx, txExecutor, wallet, stake,
		domain.TransactionTypeBetPlaced, &parlay.ID, &refType, description); err != nil {
		return nil, nil, fmt.Errorf("place parlay: %w", err)
	}

	if err := s.commitTx(txController); err != nil {
		return nil, nil, fmt.Errorf("place parlay: failed to commit transaction: %w", err)
	}

	return parlay, wallet, nil
}

func (s *betService) GetBets(ctx context.Context, userID int64, limit int) ([]domain.Bet, error) {
	bets, err := s.betRepo.GetBetsByUserID(ctx, s.dbExecutor, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch bets: %w", err)
	}
	return bets, nil
}

func (s *betService) GetPendingBets(ctx context.Context, userID int64) ([]domain.Bet, error) {
	bets, err := s.betRepo.GetPendingBetsByUserID(ctx, s.dbExecutor, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch pending bets: %w", err)
	}
	return bets, nil
}

func (s *betService) GetParlays(ctx context.Context, userID int64, limit int) ([]domain.Parlay, error) {
	parlays, err := s.parlayRepo.GetParlaysByUserID(ctx, s.dbExecutor, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch parlays: %w", err)
	}
	return parlays, nil
}

func validSettlementStatus(status domain.BetStatus) bool {
	switch status {
	case domain.BetStatusWon, domain.BetStatusLost, domain.BetStatusPush, domain.BetStatusCancelled:
		return true
	}
	return false
}

// SettleBet applies a manual settlement decision. The wallet lock is
// taken before the bet is read so concurrent settlements of the same
// bet serialize; the loser of the race sees a terminal status.
func (s *betService) SettleBet(ctx context.Context, userID, betID int64, status domain.BetStatus, result *string) (*domain.Bet, error) {
	if !validSettlementStatus(status) {
		return nil, fmt.Errorf("%w: settlement status must be won, lost, push, or cancelled", util.ErrInvalidInput)
	}

	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, fmt.Errorf("settle bet: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, fmt.Errorf("settle bet: transaction controller does not implement DBExecutor")
	}

	wallet, err := s.ledger.GetOrCreateWalletLocked(ctx, txExecutor, userID)
	if err != nil {
		return nil, fmt.Errorf("settle bet: %w", err)
	}

	bet, err := s.settleBetLocked(ctx, txExecutor, wallet, betID, status, result)
	if err != nil {
		return nil, err
	}

	if err := s.commitTx(txController); err != nil {
		return nil, fmt.Errorf("settle bet: failed to commit transaction: %w", err)
	}
	return bet, nil
}

// settleBetLocked settles one bet inside the caller's transaction. The
// caller must hold the wallet row lock.
func (s *betService) settleBetLocked(
	ctx context.Context,
	q repository.DBExecutor,
	wallet *domain.Wallet,
	betID int64,
	status domain.BetStatus,
	result *string,
) (*domain.Bet, error) {
	bet, err := s.betRepo.GetBetByID(ctx, q, betID)
	if err != nil {
		return nil, fmt.Errorf("settle bet: failed to get bet %d: %w", betID, err)
	}
	if bet.UserID != wallet.UserID {
		return nil, util.ErrNotFound
	}
	if bet.Status.Terminal() {
		return nil, util.ErrAlreadySettled
	}

	now := time.Now().UTC()
	if err := s.betRepo.UpdateBetStatus(ctx, q, bet.ID, status, result, now); err != nil {
		return nil, fmt.Errorf("settle bet: failed to update bet %d: %w", bet.ID, err)
	}
	bet.Status = status
	bet.Result = result
	bet.SettledAt = &now

	refType := domain.ReferenceTypeBet
	odds := oddsmath.FormatAmerican(bet.Odds.InexactFloat64())
	switch status {
	case domain.BetStatusWon:
		description := fmt.Sprintf("Bet won: %s @ %s", bet.Selection, odds)
		if _, err := s.ledger.Credit(ctx, q, wallet, bet.PotentialPayout,
			domain.TransactionTypeBetWon, &bet.ID, &refType, description); err != nil {
			return nil, fmt.Errorf("settle bet: %w", err)
		}
	case domain.BetStatusPush:
		description := fmt.Sprintf("Bet pushed (refunded): %s", bet.Selection)
		if _, err := s.ledger.Credit(ctx, q, wallet, bet.Stake,
			domain.TransactionTypeBetRefund, &bet.ID, &refType, description); err != nil {
			return nil, fmt.Errorf("settle bet: %w", err)
		}
	}
	// lost and cancelled move no money; the stake was debited at placement

	return bet, nil
}

// SettleParlay applies a manual settlement decision for a parlay. The
// parlay's status is always an explicit decision by the caller, never
// derived from leg statuses.
func (s *betService) SettleParlay(ctx context.Context, userID, parlayID int64, status domain.BetStatus) (*domain.Parlay, error) {
	if !validSettlementStatus(status) {
		return nil, fmt.Errorf("%w: settlement status must be won, lost, push, or cancelled", util.ErrInvalidInput)
	}

	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, fmt.Errorf("settle parlay: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, fmt.Errorf("settle parlay: transaction controller does not implement DBExecutor")
	}

	wallet, err := s.ledger.GetOrCreateWalletLocked(ctx, txExecutor, userID)
	if err != nil {
		return nil, fmt.Errorf("settle parlay: %w", err)
	}

	parlay, err := s.parlayRepo.GetParlayByID(ctx, txExecutor, parlayID)
	if err != nil {
		return nil, fmt.Errorf("settle parlay: failed to get parlay %d: %w", parlayID, err)
	}
	if parlay.UserID != userID {
		return nil, util.ErrNotFound
	}
	if parlay.Status.Terminal() {
		return nil, util.ErrAlreadySettled
	}

	now := time.Now().UTC()
	if err := s.parlayRepo.UpdateParlayStatus(ctx, txExecutor, parlay.ID, status, now); err != nil {
		return nil, fmt.Errorf("settle parlay: failed to update parlay %d: %w", parlay.ID, err)
	}
	parlay.Status = status
	parlay.SettledAt = &now

	refType := domain.ReferenceTypeParlay
	switch status {
	case domain.BetStatusWon:
		description := fmt.Sprintf("Parlay won @ %s", oddsmath.FormatAmerican(parlay.CombinedOdds.InexactFloat64()))
		if _, err := s.ledger.Credit(ctx, txExecutor, wallet, parlay.PotentialPayout,
			domain.TransactionTypeBetWon, &parlay.ID, &refType, description); err != nil {
			return nil, fmt.Errorf("settle parlay: %w", err)
		}
	case domain.BetStatusPush:
		description := "Parlay pushed (refunded)"
		if _, err := s.ledger.Credit(ctx, txExecutor, wallet, parlay.Stake,
			domain.TransactionTypeBetRefund, &parlay.ID, &refType, description); err != nil {
			return nil, fmt.Errorf("settle parlay: %w", err)
		}
	}

	if err := s.commitTx(txController); err != nil {
		return nil, fmt.Errorf("settle parlay: failed to commit transaction: %w", err)
	}
	return parlay, nil
}

// SettleParlayLeg records the outcome of one leg for tracking. Money
// only moves when the parlay itself is settled.
func (s *betService) SettleParlayLeg(ctx context.Context, userID, legID int64, status domain.BetStatus) error {
	if !validSettlementStatus(status) {
		return fmt.Errorf("%w: settlement status must be won, lost, push, or cancelled", util.ErrInvalidInput)
	}

	leg, err := s.parlayRepo.GetLegByID(ctx, s.dbExecutor, legID)
	if err != nil {
		return fmt.Errorf("settle parlay leg: failed to get leg %d: %w", legID, err)
	}

	parlay, err := s.parlayRepo.GetParlayByID(ctx, s.dbExecutor, leg.ParlayID)
	if err != nil {
		return fmt.Errorf("settle parlay leg: failed to get parlay %d: %w", leg.ParlayID, err)
	}
	if parlay.UserID != userID {
		return util.ErrNotFound
	}
	if leg.Status.Terminal() {
		return util.ErrAlreadySettled
	}

	if err := s.parlayRepo.UpdateLegStatus(ctx, s.dbExecutor, legID, status); err != nil {
		return fmt.Errorf("settle parlay leg: failed to update leg %d: %w", legID, err)
	}
	return nil
}

// AutoSettle resolves a user's pending bets against completed game
// results, one database transaction per bet so a single failure does
// not roll back the whole pass. Bets whose games have not finished, or
// whose selections cannot be parsed, stay pending.
func (s *betService) AutoSettle(ctx context.Context, userID int64) (*AutoSettleReport, error) {
	pendingBets, err := s.betRepo.GetPendingBetsByUserID(ctx, s.dbExecutor, userID)
	if err != nil {
		return nil, fmt.Errorf("auto settle: failed to fetch pending bets: %w", err)
	}

	report := &AutoSettleReport{Results: []AutoSettleResult{}}
	if len(pendingBets) == 0 {
		wallet, err := s.walletRepo.GetWalletByUserID(ctx, s.dbExecutor, userID)
		if err == nil {
			report.NewBalance = wallet.Balance
		}
		return report, nil
	}

	// group by sport so each sport's results are fetched once
	betsBySport := make(map[string][]domain.Bet)
	for _, bet := range pendingBets {
		betsBySport[bet.SportKey] = append(betsBySport[bet.SportKey], bet)
	}

	var lastBalance decimal.Decimal
	for sportKey, bets := range betsBySport {
		games, err := s.resultProvider.GetCompletedGames(ctx, sportKey, 3)
		if err != nil {
			util.GetLogger().Warn("auto settle: failed to fetch results", "sport", sportKey, "error", err)
			for _, bet := range bets {
				report.Results = append(report.Results, AutoSettleResult{
					BetID: bet.ID, Selection: bet.Selection, Status: domain.BetStatusPending,
				})
			}
			continue
		}

		for _, bet := range bets {
			game := FindGameResult(games, bet.EventID, bet.HomeTeam, bet.AwayTeam)
			if game == nil {
				report.Results = append(report.Results, AutoSettleResult{
					BetID: bet.ID, Selection: bet.Selection, Status: domain.BetStatusPending,
				})
				continue
			}

			status, err := EvaluateBet(bet.BetType, bet.Selection, bet.HomeTeam, bet.AwayTeam, *game)
			if err != nil {
				util.GetLogger().Warn("auto settle: unresolved bet left pending",
					"bet_id", bet.ID, "selection", bet.Selection, "error", err)
				report.Results = append(report.Results, AutoSettleResult{
					BetID: bet.ID, Selection: bet.Selection, Status: domain.BetStatusPending,
				})
				continue
			}

			resultText := GameResultText(*game)
			balance, err := s.autoSettleOne(ctx, userID, bet.ID, status, resultText)
			if err != nil {
				if util.IsError(err, util.ErrAlreadySettled) {
					continue
				}
				return nil, fmt.Errorf("auto settle: bet %d: %w", bet.ID, err)
			}
			lastBalance = balance

			report.Settled++
			report.Results = append(report.Results, AutoSettleResult{
				BetID: bet.ID, Selection: bet.Selection, Status: status, Result: resultText,
			})
		}
	}

	if report.Settled > 0 {
		report.NewBalance = lastBalance
	} else if wallet, err := s.walletRepo.GetWalletByUserID(ctx, s.dbExecutor, userID); err == nil {
		report.NewBalance = wallet.Balance
	}
	return report, nil
}

// autoSettleOne settles a single bet in its own transaction and
// returns the wallet balance after it.
func (s *betService) autoSettleOne(ctx context.Context, userID, betID int64, status domain.BetStatus, resultText string) (decimal.Decimal, error) {
	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return decimal.Zero, fmt.Errorf("transaction controller does not implement DBExecutor")
	}

	wallet, err := s.ledger.GetOrCreateWalletLocked(ctx, txExecutor, userID)
	if err != nil {
		return decimal.Zero, err
	}

	if _, err := s.settleBetLocked(ctx, txExecutor, wallet, betID, status, &resultText); err != nil {
		return decimal.Zero, err
	}

	if err := s.commitTx(txController); err != nil {
		return decimal.Zero, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return wallet.Balance, nil
}

// GetStats summarizes a user's record across all bets.
func (s *betService) GetStats(ctx context.Context, userID int64) (*BetStats, error) {
	allBets, err := s.betRepo.GetBetsByUserID(ctx, s.dbExecutor, userID, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch bets for stats: %w", err)
	}

	stats := &BetStats{
		TotalBets:    len(allBets),
		TotalStaked:  decimal.Zero,
		TotalReturns: decimal.Zero,
	}

	for _, bet := range allBets {
		switch bet.Status {
		case domain.BetStatusPending:
			stats.PendingBets++
			continue
		case domain.BetStatusCancelled:
			continue
		}

		stats.SettledBets++
		stats.TotalStaked = stats.TotalStaked.Add(bet.Stake)
		switch bet.Status {
		case domain.BetStatusWon:
			stats.WonBets++
			stats.TotalReturns = stats.TotalReturns.Add(bet.PotentialPayout)
		case domain.BetStatusLost:
			stats.LostBets++
		}
	}

	stats.ProfitLoss = stats.TotalReturns.Sub(stats.TotalStaked)
	if stats.TotalStaked.IsPositive() {
		stats.ROI = stats.ProfitLoss.Div(stats.TotalStaked).Mul(decimal.NewFromInt(100)).Round(2)
	}
	if stats.SettledBets > 0 {
		stats.WinRate = decimal.NewFromInt(int64(stats.WonBets)).
			Div(decimal.NewFromInt(int64(stats.SettledBets))).
			Mul(decimal.NewFromInt(100)).Round(2)
	} else {
		stats.ROI = decimal.Zero
		stats.WinRate = decimal.Zero
	}
	return stats, nil
}

// GetProfitHistory returns one point per day over the window, with
// zero-profit days filled in so charts have a continuous series.
func (s *betService) GetProfitHistory(ctx context.Context, userID int64, days int) ([]ProfitPoint, error) {
	if days <= 0 {
		days = 30
	}

	now := time.Now().UTC()
	since := now.AddDate(0, 0, -days)

	settledBets, err := s.betRepo.GetSettledBetsSince(ctx, s.dbExecutor, userID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch settled bets for profit history: %w", err)
	}

	dailyProfits := make(map[string]decimal.Decimal)
	for _, bet := range settledBets {
		if bet.SettledAt == nil {
			continue
		}
		dateKey := bet.SettledAt.UTC().Format("2006-01-02")

		switch bet.Status {
		case domain.BetStatusWon:
			dailyProfits[dateKey] = dailyProfits[dateKey].Add(bet.PotentialPayout.Sub(bet.Stake))
		case domain.BetStatusLost:
			dailyProfits[dateKey] = dailyProfits[dateKey].Sub(bet.Stake)
		}
		// push moves no money
	}

	points := make([]ProfitPoint, 0, days+1)
	cumulative := decimal.Zero
	for i := days; i >= 0; i-- {
		dateKey := now.AddDate(0, 0, -i).Format("2006-01-02")
		profit := dailyProfits[dateKey]
		cumulative = cumulative.Add(profit)
		points = append(points, ProfitPoint{
			Date:       dateKey,
			Profit:     profit.Round(2),
			Cumulative: cumulative.Round(2),
		})
	}
	return points, nil
}

// GetStatsBySport breaks a user's record down per sport.
func (s *betService) GetStatsBySport(ctx context.Context, userID int64) ([]SportStats, error) {
	allBets, err := s.betRepo.GetBetsByUserID(ctx, s.dbExecutor, userID, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch bets for sport stats: %w", err)
	}

	bySport := make(map[string]*SportStats)
	order := []string{}
	for _, bet := range allBets {
		stats, ok := bySport[bet.SportKey]
		if !ok {
			stats = &SportStats{Sport: sportDisplayName(bet.SportKey), Profit: decimal.Zero}
			bySport[bet.SportKey] = stats
			order = append(order, bet.SportKey)
		}

		stats.Bets++
		switch bet.Status {
		case domain.BetStatusWon:
			stats.Wins++
			stats.Profit = stats.Profit.Add(bet.PotentialPayout.Sub(bet.Stake))
		case domain.BetStatusLost:
			stats.Losses++
			stats.Profit = stats.Profit.Sub(bet.Stake)
		}
	}

	result := make([]SportStats, 0, len(bySport))
	for _, key := range order {
		stats := bySport[key]
		stats.Profit = stats.Profit.Round(2)
		result = append(result, *stats)
	}
	return result, nil
}

func sportDisplayName(sportKey string) string {
	words := []byte(sportKey)
	capitalize := true
	for i, c := range words {
		if c == '_' {
			words[i] = ' '
			capitalize = true
			continue
		}
		if capitalize && c >= 'a' && c <= 'z' {
			words[i] = c - 'a' + 'A'
		}
		capitalize = false
	}
	return string(words)
}
