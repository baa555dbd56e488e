package employee

import "context"

// TransactionManager はトランザクション制御の抽象化です。
type TransactionManager interface {
	WithinReadOnly(ctx context.Context, fn func(context.Context) error) error
	WithinReadWrite(ctx context.Context, fn func(context.Context) error) error
}

type noopTransactionManager struct{}

func (noopTransactionManager) WithinReadOnly(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

func (noopTransactionManager) WithinReadWrite(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

// Service は社員 CRUD のユースケースをまとめます。
// 自身は状態を持たず、永続化はすべて Repository に委譲します。
type Service struct {
	repo Repository
	tx   TransactionManager
}

// UseCase は社員ユースケースの公開インターフェースです。
type UseCase interface {
	ListEmployees(ctx context.Context) ([]*Employee, error)
	GetEmployee(ctx context.Context, id int64) (*Employee, error)
	CreateEmployee(ctx context.Context, in CreateEmployeeInput) (*Employee, error)
	UpdateEmployee(ctx context.Context, in UpdateEmployeeInput) (*Employee, error)
	DeleteEmployee(ctx context.Context, id int64) (*Employee, error)
}

// NewService は Service を生成します。tx が nil の場合は
// トランザクション制御を行わない実装が使われます。
func NewService(repo Repository, tx TransactionManager) *Service {
	if tx == nil {
		tx = noopTransactionManager{}
	}
	return &Service{repo: repo, tx: tx}
}

// CreateEmployeeInput は社員作成時の入力です。
type CreateEmployeeInput struct {
	Name           string
	DepartmentCode string
	Salary         float64
}

// UpdateEmployeeInput は社員更新時の入力です。
type UpdateEmployeeInput struct {
	ID             int64
	Name           string
	DepartmentCode string
	Salary         float64
}

// ListEmployees は全社員を取得します。呼び出しごとに新しい結果を返し、
// 並び順はストアに従います。
func (s *Service) ListEmployees(ctx context.Context) ([]*Employee, error) {
	var employees []*Employee
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		found, err := s.repo.FindAll(txCtx)
		if err != nil {
			return err
		}
		employees = found
		return nil
	}); err != nil {
		return nil, err
	}

	if employees == nil {
		employees = []*Employee{}
	}
	return employees, nil
}

// GetEmployee は識別子で社員を取得します。
func (s *Service) GetEmployee(ctx context.Context, id int64) (*Employee, error) {
	var result *Employee
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		found, err := s.repo.FindByID(txCtx, id)
		if err != nil {
			return err
		}
		result = found
		return nil
	}); err != nil {
		return nil, err
	}

	return result, nil
}

// CreateEmployee は新しい社員を保存します。識別子はストアが採番します。
func (s *Service) CreateEmployee(ctx context.Context, in CreateEmployeeInput) (*Employee, error) {
	var created *Employee
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		saved, err := s.repo.Save(txCtx, &Employee{
			Name:           in.Name,
			DepartmentCode: in.DepartmentCode,
			Salary:         in.Salary,
		})
		if err != nil {
			return err
		}
		created = saved
		return nil
	}); err != nil {
		return nil, err
	}

	return created, nil
}

// UpdateEmployee は既存の社員を更新します。取得と保存は同一チェーン内で
// 逐次実行され、保存は取得結果に対してのみ行われます。社員が存在しない
// 場合は作成せず ErrEmployeeNotFound を返します。
func (s *Service) UpdateEmployee(ctx context.Context, in UpdateEmployeeInput) (*Employee, error) {
	var updated *Employee
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		existing, err := s.repo.FindByID(txCtx, in.ID)
		if err != nil {
			return err
		}

		// 更新対象は名前・部署コード・給与のみ。識別子は変更しません。
		existing.Name = in.Name
		existing.DepartmentCode = in.DepartmentCode
		existing.Salary = in.Salary

		saved, err := s.repo.Save(txCtx, existing)
		if err != nil {
			return err
		}

		updated = saved
		return nil
	}); err != nil {
		return nil, err
	}

	return updated, nil
}

// DeleteEmployee は社員を削除し、削除前のレコードを確認用に返します。
func (s *Service) DeleteEmployee(ctx context.Context, id int64) (*Employee, error) {
	var deleted *Employee
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		existing, err := s.repo.FindByID(txCtx, id)
		if err != nil {
			return err
		}

		if err := s.repo.Delete(txCtx, existing); err != nil {
			return err
		}

		deleted = existing
		return nil
	}); err != nil {
		return nil, err
	}

	return deleted, nil
}
