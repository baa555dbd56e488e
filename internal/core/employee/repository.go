package employee

import "context"

// Repository は社員永続化の抽象です。すべての操作はコンテキストを通じて
// キャンセル可能であり、不在は ErrEmployeeNotFound で通知されます。
type Repository interface {
	// FindAll は全社員を取得します。結果は空であり得ます。
	FindAll(ctx context.Context) ([]*Employee, error)
	// FindByID は識別子で社員を取得します。
	FindByID(ctx context.Context, id int64) (*Employee, error)
	// Save は社員を永続化します。識別子が未採番の場合はストアが採番します。
	Save(ctx context.Context, emp *Employee) (*Employee, error)
	// Delete は社員を削除します。削除結果にペイロードはありません。
	Delete(ctx context.Context, emp *Employee) error
}
