package rest

import (
	"context"

	"github.com/go-kit/kit/endpoint"

	"github.com/ogurasousui/codex-rest-clean-arch/internal/core/employee"
)

// Endpoints は社員 REST API のエンドポイント一式です。各エンドポイントは
// 遅延評価される計算の記述で、構築時には何も実行しません。評価は
// ディスパッチャ(HTTP トランスポート)がリクエストごとに行います。
type Endpoints struct {
	ListEmployeesEndpoint  endpoint.Endpoint
	GetEmployeeEndpoint    endpoint.Endpoint
	CreateEmployeeEndpoint endpoint.Endpoint
	UpdateEmployeeEndpoint endpoint.Endpoint
	DeleteEmployeeEndpoint endpoint.Endpoint
}

// MakeEndpoints は UseCase から Endpoints を構築します。
func MakeEndpoints(svc employee.UseCase) Endpoints {
	return Endpoints{
		ListEmployeesEndpoint:  makeListEmployeesEndpoint(svc),
		GetEmployeeEndpoint:    makeGetEmployeeEndpoint(svc),
		CreateEmployeeEndpoint: makeCreateEmployeeEndpoint(svc),
		UpdateEmployeeEndpoint: makeUpdateEmployeeEndpoint(svc),
		DeleteEmployeeEndpoint: makeDeleteEmployeeEndpoint(svc),
	}
}

// ビジネスエラーはエンドポイントのエラーとしてではなく、レスポンス値に
// 埋め込んで返します。エンドポイントのエラーはトランスポート障害として
// 扱われるため、不在のようなドメイン上の通常結果には適しません。
// レスポンスエンコーダが Failed() を見て HTTP ステータスへ変換します。

type listEmployeesRequest struct{}

type listEmployeesResponse struct {
	Employees []*employee.Employee
	Err       error
}

// Failed は endpoint.Failer を実装します。
func (r listEmployeesResponse) Failed() error { return r.Err }

func makeListEmployeesEndpoint(svc employee.UseCase) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		employees, err := svc.ListEmployees(ctx)
		return listEmployeesResponse{Employees: employees, Err: err}, nil
	}
}

type getEmployeeRequest struct {
	ID int64
}

type getEmployeeResponse struct {
	Employee *employee.Employee
	Err      error
}

func (r getEmployeeResponse) Failed() error { return r.Err }

func makeGetEmployeeEndpoint(svc employee.UseCase) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		req := request.(getEmployeeRequest)
		emp, err := svc.GetEmployee(ctx, req.ID)
		return getEmployeeResponse{Employee: emp, Err: err}, nil
	}
}

type createEmployeeRequest struct {
	Input employee.CreateEmployeeInput
}

type createEmployeeResponse struct {
	Employee *employee.Employee
	Err      error
}

func (r createEmployeeResponse) Failed() error { return r.Err }

func makeCreateEmployeeEndpoint(svc employee.UseCase) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		req := request.(createEmployeeRequest)
		emp, err := svc.CreateEmployee(ctx, req.Input)
		return createEmployeeResponse{Employee: emp, Err: err}, nil
	}
}

type updateEmployeeRequest struct {
	Input employee.UpdateEmployeeInput
}

type updateEmployeeResponse struct {
	Employee *employee.Employee
	Err      error
}

func (r updateEmployeeResponse) Failed() error { return r.Err }

func makeUpdateEmployeeEndpoint(svc employee.UseCase) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		req := request.(updateEmployeeRequest)
		emp, err := svc.UpdateEmployee(ctx, req.Input)
		return updateEmployeeResponse{Employee: emp, Err: err}, nil
	}
}

type deleteEmployeeRequest struct {
	ID int64
}

type deleteEmployeeResponse struct {
	Employee *employee.Employee
	Err      error
}

func (r deleteEmployeeResponse) Failed() error { return r.Err }

func makeDeleteEmployeeEndpoint(svc employee.UseCase) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		req := request.(deleteEmployeeRequest)
		emp, err := svc.DeleteEmployee(ctx, req.ID)
		return deleteEmployeeResponse{Employee: emp, Err: err}, nil
	}
}
