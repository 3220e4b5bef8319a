package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bizbookhq/bizbook_backend/internal/apperrors"
	"github.com/bizbookhq/bizbook_backend/internal/core/domain"
	portsrepo "github.com/bizbookhq/bizbook_backend/internal/core/ports/repositories"
	portssvc "github.com/bizbookhq/bizbook_backend/internal/core/ports/services"
	"github.com/bizbookhq/bizbook_backend/internal/dto"
	"github.com/bizbookhq/bizbook_backend/internal/middleware"
	"github.com/bizbookhq/bizbook_backend/internal/utils"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type payrollService struct {
	txManager   portsrepo.TransactionManager
	teamRepo    portsrepo.TeamRepositoryFacade
	costingRepo portsrepo.CostingRepositoryFacade
	txnRepo     portsrepo.TransactionRepositoryFacade
}

// NewPayrollService creates the payroll service. Salary accrues into
// per-member sub-ledger accounts and is paid out of the salary COGS pool.
func NewPayrollService(repos *portsrepo.RepositoryProvider) portssvc.PayrollSvcFacade {
	return &payrollService{
		txManager:   repos.TxManager,
		teamRepo:    repos.TeamRepo,
		costingRepo: repos.CostingRepo,
		txnRepo:     repos.TxnRepo,
	}
}

// DistributeSalary accrues an amount into a member's sub-ledger for a month.
// A negative amount corrects an earlier accrual.
func (s *payrollService) DistributeSalary(ctx context.Context, businessID string, req dto.DistributeSalaryRequest, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	member, err := s.teamRepo.FindMemberByID(ctx, businessID, req.MemberID)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	err = s.txManager.WithTx(ctx, func(tx pgx.Tx) error {
		if _, err := s.teamRepo.AdjustTeamBalanceInTx(ctx, tx, member.MemberID, req.Amount, userID, now); err != nil {
			return err
		}
		return s.teamRepo.InsertSalaryTransactionInTx(ctx, tx, domain.SalaryTransaction{
			SalaryTxnID: uuid.NewString(),
			MemberID:    member.MemberID,
			Month:       req.Month,
			Amount:      req.Amount,
			Type:        domain.SalaryAddition,
			Notes:       "Manual salary distribution",
			AuditFields: newAuditFields(userID, now),
		})
	})
	if err != nil {
		return err
	}

	logger.Info("Salary distributed",
		slog.String("member_id", member.MemberID),
		slog.String("month", req.Month),
		slog.String("amount", req.Amount.String()))
	return nil
}

// PayoutSalary pays cash out of the salary pool to a member. The pool must
// cover the amount; the member's sub-ledger balance may go negative, which
// represents an advance against future salary. The cash movement is
// journaled like a COGS payout, without an account reference.
func (s *payrollService) PayoutSalary(ctx context.Context, businessID string, req dto.PayoutSalaryRequest, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Amount.IsPositive() {
		return fmt.Errorf("%w: payout amount must be positive", apperrors.ErrValidation)
	}
	member, err := s.teamRepo.FindMemberByID(ctx, businessID, req.MemberID)
	if err != nil {
		return err
	}
	salaryCategory, err := s.costingRepo.FindCategoryByPurpose(ctx, businessID, domain.PurposeSalary)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: business has no salary category", apperrors.ErrConflict)
		}
		return err
	}

	now := time.Now().UTC()
	err = s.txManager.WithTx(ctx, func(tx pgx.Tx) error {
		pool, err := s.costingRepo.FindCogsAccountForUpdate(ctx, tx, businessID, salaryCategory.CategoryID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return fmt.Errorf("%w: salary pool is empty", apperrors.ErrInsufficientBalance)
			}
			return err
		}
		if pool.Balance.LessThan(req.Amount) {
			return fmt.Errorf("%w: salary pool holds %s, payout needs %s", apperrors.ErrInsufficientBalance, pool.Balance, req.Amount)
		}
		if err := s.costingRepo.DebitCogsInTx(ctx, tx, pool.CogsAccountID, req.Amount, userID, now); err != nil {
			return err
		}
		if _, err := s.teamRepo.AdjustTeamBalanceInTx(ctx, tx, member.MemberID, req.Amount.Neg(), userID, now); err != nil {
			return err
		}

		notes := req.Description
		if notes == "" {
			notes = fmt.Sprintf("Salary payout for %s", req.Month)
		}
		if err := s.teamRepo.InsertSalaryTransactionInTx(ctx, tx, domain.SalaryTransaction{
			SalaryTxnID: uuid.NewString(),
			MemberID:    member.MemberID,
			Month:       req.Month,
			Amount:      req.Amount.Neg(),
			Type:        domain.SalaryWithdrawal,
			Notes:       notes,
			AuditFields: newAuditFields(userID, now),
		}); err != nil {
			return err
		}

		txn := domain.Transaction{
			TransactionID: uuid.NewString(),
			AccountID:     nil,
			Amount:        req.Amount,
			Direction:     domain.Outgoing,
			Notes:         fmt.Sprintf("Salary payout to %s", member.Name),
			OccurredAt:    now,
			AuditFields:   newAuditFields(userID, now),
		}
		if _, err := s.txnRepo.AppendInTx(ctx, tx, txn); err != nil {
			return err
		}
		return s.txnRepo.LinkBusinessInTx(ctx, tx, txn.TransactionID, businessID)
	})
	if err != nil {
		return err
	}

	logger.Info("Salary paid out",
		slog.String("member_id", member.MemberID),
		slog.String("month", req.Month),
		slog.String("amount", req.Amount.String()))
	return nil
}

// AutoDistributeSalaries accrues the configured monthly salary for every
// active salaried member in one transaction. A member who already has a
// salary addition for the current month is skipped, so the run is idempotent.
// Returns the number of members reached.
func (s *payrollService) AutoDistributeSalaries(ctx context.Context, businessID string, userID string) (int, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	members, err := s.teamRepo.ListActiveSalariedMembers(ctx, businessID)
	if err != nil {
		return 0, err
	}

	now := time.Now().UTC()
	month := utils.MonthKey(now)
	distributed := 0

	err = s.txManager.WithTx(ctx, func(tx pgx.Tx) error {
		for _, member := range members {
			exists, err := s.teamRepo.HasSalaryTransactionInTx(ctx, tx, member.MemberID, month)
			if err != nil {
				return err
			}
			if exists {
				continue
			}
			if _, err := s.teamRepo.AdjustTeamBalanceInTx(ctx, tx, member.MemberID, member.Salary, userID, now); err != nil {
				return err
			}
			if err := s.teamRepo.InsertSalaryTransactionInTx(ctx, tx, domain.SalaryTransaction{
				SalaryTxnID: uuid.NewString(),
				MemberID:    member.MemberID,
				Month:       month,
				Amount:      member.Salary,
				Type:        domain.SalaryAddition,
				Notes:       fmt.Sprintf("Monthly salary for %s", month),
				AuditFields: newAuditFields(userID, now),
			}); err != nil {
				return err
			}
			distributed++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	logger.Info("Salaries auto-distributed", slog.String("month", month), slog.Int("distributed", distributed))
	return distributed, nil
}

// CreateMember adds an employee.
func (s *payrollService) CreateMember(ctx context.Context, businessID string, req dto.CreateTeamMemberRequest, userID string) (*domain.TeamMember, error) {
	if req.Salary.IsNegative() {
		return nil, fmt.Errorf("%w: salary cannot be negative", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	member := domain.TeamMember{
		MemberID:    uuid.NewString(),
		BusinessID:  businessID,
		Name:        req.Name,
		Phone:       req.Phone,
		Salary:      req.Salary,
		IsActive:    true,
		AuditFields: newAuditFields(userID, now),
	}
	if err := s.teamRepo.SaveMember(ctx, member); err != nil {
		return nil, err
	}
	return &member, nil
}

// UpdateMember updates an employee's details.
func (s *payrollService) UpdateMember(ctx context.Context, businessID string, memberID string, req dto.UpdateTeamMemberRequest, userID string) (*domain.TeamMember, error) {
	member, err := s.teamRepo.FindMemberByID(ctx, businessID, memberID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		member.Name = *req.Name
	}
	if req.Phone != nil {
		member.Phone = *req.Phone
	}
	if req.Salary != nil {
		if req.Salary.IsNegative() {
			return nil, fmt.Errorf("%w: salary cannot be negative", apperrors.ErrValidation)
		}
		member.Salary = *req.Salary
	}
	if req.IsActive != nil {
		member.IsActive = *req.IsActive
	}
	member.LastUpdatedAt = time.Now().UTC()
	member.LastUpdatedBy = userID

	if err := s.teamRepo.UpdateMember(ctx, *member); err != nil {
		return nil, err
	}
	return member, nil
}

// ListMembers retrieves the employees of a business.
func (s *payrollService) ListMembers(ctx context.Context, businessID string) ([]domain.TeamMember, error) {
	return s.teamRepo.ListMembers(ctx, businessID)
}

// GetMemberAccount retrieves a member's sub-ledger balance and salary history.
func (s *payrollService) GetMemberAccount(ctx context.Context, businessID string, memberID string) (*domain.TeamAccount, []domain.SalaryTransaction, error) {
	if _, err := s.teamRepo.FindMemberByID(ctx, businessID, memberID); err != nil {
		return nil, nil, err
	}
	account, err := s.teamRepo.FindTeamAccount(ctx, memberID)
	if err != nil {
		return nil, nil, err
	}
	history, err := s.teamRepo.ListSalaryTransactionsByMember(ctx, memberID)
	if err != nil {
		return nil, nil, err
	}
	return account, history, nil
}
