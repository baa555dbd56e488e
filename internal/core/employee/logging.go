package employee

import (
	"context"
	"time"

	"github.com/go-kit/log"
)

// loggingMiddleware は UseCase の各操作を構造化ログへ記録します。
type loggingMiddleware struct {
	logger log.Logger
	next   UseCase
}

// NewLoggingMiddleware は UseCase をログ記録付きでラップします。
func NewLoggingMiddleware(logger log.Logger, next UseCase) UseCase {
	return &loggingMiddleware{logger: logger, next: next}
}

func (mw *loggingMiddleware) ListEmployees(ctx context.Context) (employees []*Employee, err error) {
	defer func(begin time.Time) {
		mw.logger.Log("method", "ListEmployees", "count", len(employees), "took", time.Since(begin), "err", err)
	}(time.Now())
	return mw.next.ListEmployees(ctx)
}

func (mw *loggingMiddleware) GetEmployee(ctx context.Context, id int64) (emp *Employee, err error) {
	defer func(begin time.Time) {
		mw.logger.Log("method", "GetEmployee", "id", id, "took", time.Since(begin), "err", err)
	}(time.Now())
	return mw.next.GetEmployee(ctx, id)
}

func (mw *loggingMiddleware) CreateEmployee(ctx context.Context, in CreateEmployeeInput) (emp *Employee, err error) {
	defer func(begin time.Time) {
		var id int64
		if emp != nil {
			id = emp.ID
		}
		mw.logger.Log("method", "CreateEmployee", "id", id, "took", time.Since(begin), "err", err)
	}(time.Now())
	return mw.next.CreateEmployee(ctx, in)
}

func (mw *loggingMiddleware) UpdateEmployee(ctx context.Context, in UpdateEmployeeInput) (emp *Employee, err error) {
	defer func(begin time.Time) {
		mw.logger.Log("method", "UpdateEmployee", "id", in.ID, "took", time.Since(begin), "err", err)
	}(time.Now())
	return mw.next.UpdateEmployee(ctx, in)
}

func (mw *loggingMiddleware) DeleteEmployee(ctx context.Context, id int64) (emp *Employee, err error) {
	defer func(begin time.Time) {
		mw.logger.Log("method", "DeleteEmployee", "id", id, "took", time.Since(begin), "err", err)
	}(time.Now())
	return mw.next.DeleteEmployee(ctx, id)
}
