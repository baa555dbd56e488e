package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-kit/kit/endpoint"
	"github.com/go-kit/kit/transport"
	kithttp "github.com/go-kit/kit/transport/http"
	"github.com/go-kit/log"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/ogurasousui/codex-rest-clean-arch/internal/core/employee"
)

var (
	// errBadRouting はルート定義とデコーダの不整合を表します。
	errBadRouting = errors.New("rest: inconsistent mapping between route and handler")
	// errBadRequest はリクエストの構文不正を表します。
	errBadRequest = errors.New("rest: bad request")
)

type contextKey int

const contextKeyRequestID contextKey = iota

// MakeHTTPHandler は社員 REST API のルーティングを構築します。
// 各ルートの kithttp.Server がディスパッチャとして働き、リクエスト受信時に
// 対応するエンドポイントを評価します。
func MakeHTTPHandler(svc employee.UseCase, logger log.Logger) http.Handler {
	e := MakeEndpoints(svc)
	r := mux.NewRouter()

	options := []kithttp.ServerOption{
		kithttp.ServerErrorHandler(transport.NewLogErrorHandler(logger)),
		kithttp.ServerErrorEncoder(encodeError),
		kithttp.ServerBefore(populateRequestID),
		kithttp.ServerAfter(writeRequestIDHeader),
	}

	// GET    /employees        社員一覧
	// GET    /employee/{id}    社員取得(不在は 404)
	// POST   /saveEmployee     社員作成(201 + 確認メッセージ)
	// PUT    /updateEmployee   社員更新(不在は 404、作成はしない)
	// DELETE /employee/{id}    社員削除(削除前のレコードを返す)

	r.Methods(http.MethodGet).Path("/employees").Handler(kithttp.NewServer(
		e.ListEmployeesEndpoint,
		decodeListEmployeesRequest,
		encodeJSONResponse,
		options...,
	))
	r.Methods(http.MethodGet).Path("/employee/{employeeId}").Handler(kithttp.NewServer(
		e.GetEmployeeEndpoint,
		decodeGetEmployeeRequest,
		encodeJSONResponse,
		options...,
	))
	r.Methods(http.MethodPost).Path("/saveEmployee").Handler(kithttp.NewServer(
		e.CreateEmployeeEndpoint,
		decodeCreateEmployeeRequest,
		encodeCreateEmployeeResponse,
		options...,
	))
	r.Methods(http.MethodPut).Path("/updateEmployee").Handler(kithttp.NewServer(
		e.UpdateEmployeeEndpoint,
		decodeUpdateEmployeeRequest,
		encodeJSONResponse,
		options...,
	))
	r.Methods(http.MethodDelete).Path("/employee/{employeeId}").Handler(kithttp.NewServer(
		e.DeleteEmployeeEndpoint,
		decodeDeleteEmployeeRequest,
		encodeJSONResponse,
		options...,
	))
	r.Methods(http.MethodGet).Path("/healthz").HandlerFunc(healthz)

	return r
}

// employeePayload は Employee の JSON 表現です。フィールド名は
// 既存クライアントとの互換のため employeeId / employeeName を使います。
type employeePayload struct {
	ID             int64   `json:"employeeId"`
	Name           string  `json:"employeeName"`
	DepartmentCode string  `json:"departmentCode"`
	Salary         float64 `json:"salary"`
}

func toEmployeePayload(emp *employee.Employee) employeePayload {
	return employeePayload{
		ID:             emp.ID,
		Name:           emp.Name,
		DepartmentCode: emp.DepartmentCode,
		Salary:         emp.Salary,
	}
}

func toEmployeePayloads(employees []*employee.Employee) []employeePayload {
	payloads := make([]employeePayload, 0, len(employees))
	for _, emp := range employees {
		payloads = append(payloads, toEmployeePayload(emp))
	}
	return payloads
}

func decodeListEmployeesRequest(_ context.Context, _ *http.Request) (interface{}, error) {
	return listEmployeesRequest{}, nil
}

func decodeGetEmployeeRequest(_ context.Context, r *http.Request) (interface{}, error) {
	id, err := employeeIDFromPath(r)
	if err != nil {
		return nil, err
	}
	return getEmployeeRequest{ID: id}, nil
}

func decodeCreateEmployeeRequest(_ context.Context, r *http.Request) (interface{}, error) {
	var payload employeePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: decode body: %v", errBadRequest, err)
	}
	return createEmployeeRequest{Input: employee.CreateEmployeeInput{
		Name:           payload.Name,
		DepartmentCode: payload.DepartmentCode,
		Salary:         payload.Salary,
	}}, nil
}

func decodeUpdateEmployeeRequest(_ context.Context, r *http.Request) (interface{}, error) {
	var payload employeePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: decode body: %v", errBadRequest, err)
	}
	return updateEmployeeRequest{Input: employee.UpdateEmployeeInput{
		ID:             payload.ID,
		Name:           payload.Name,
		DepartmentCode: payload.DepartmentCode,
		Salary:         payload.Salary,
	}}, nil
}

func decodeDeleteEmployeeRequest(_ context.Context, r *http.Request) (interface{}, error) {
	id, err := employeeIDFromPath(r)
	if err != nil {
		return nil, err
	}
	return deleteEmployeeRequest{ID: id}, nil
}

func employeeIDFromPath(r *http.Request) (int64, error) {
	raw, ok := mux.Vars(r)["employeeId"]
	if !ok {
		return 0, errBadRouting
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: employee id must be an integer", errBadRequest)
	}
	return id, nil
}

// encodeJSONResponse は成功時にペイロードをそのまま JSON で返し、
// レスポンスに埋め込まれたビジネスエラーは HTTP エラーへ変換します。
func encodeJSONResponse(ctx context.Context, w http.ResponseWriter, response interface{}) error {
	if f, ok := response.(endpoint.Failer); ok && f.Failed() != nil {
		encodeError(ctx, f.Failed(), w)
		return nil
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	switch resp := response.(type) {
	case listEmployeesResponse:
		return json.NewEncoder(w).Encode(toEmployeePayloads(resp.Employees))
	case getEmployeeResponse:
		return json.NewEncoder(w).Encode(toEmployeePayload(resp.Employee))
	case updateEmployeeResponse:
		return json.NewEncoder(w).Encode(toEmployeePayload(resp.Employee))
	case deleteEmployeeResponse:
		return json.NewEncoder(w).Encode(toEmployeePayload(resp.Employee))
	default:
		return json.NewEncoder(w).Encode(response)
	}
}

// encodeCreateEmployeeResponse は採番された識別子を含む確認メッセージを
// 201 Created のプレーンテキストで返します。
func encodeCreateEmployeeResponse(ctx context.Context, w http.ResponseWriter, response interface{}) error {
	resp := response.(createEmployeeResponse)
	if resp.Failed() != nil {
		encodeError(ctx, resp.Failed(), w)
		return nil
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusCreated)
	_, err := fmt.Fprintf(w, "Employee created with Id: %d", resp.Employee.ID)
	return err
}

func encodeError(ctx context.Context, err error, w http.ResponseWriter) {
	if err == nil {
		panic("encodeError with nil error")
	}
	if id, ok := ctx.Value(contextKeyRequestID).(string); ok {
		w.Header().Set("X-Request-Id", id)
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(codeFrom(err))
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error": err.Error(),
	})
}

func codeFrom(err error) int {
	switch {
	case errors.Is(err, employee.ErrEmployeeNotFound):
		return http.StatusNotFound
	case errors.Is(err, errBadRequest), errors.Is(err, errBadRouting):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// populateRequestID はリクエスト ID をコンテキストへ載せます。クライアント
// 指定が無ければ新しく採番します。
func populateRequestID(ctx context.Context, r *http.Request) context.Context {
	id := r.Header.Get("X-Request-Id")
	if id == "" {
		id = uuid.NewString()
	}
	return context.WithValue(ctx, contextKeyRequestID, id)
}

func writeRequestIDHeader(ctx context.Context, w http.ResponseWriter) context.Context {
	if id, ok := ctx.Value(contextKeyRequestID).(string); ok {
		w.Header().Set("X-Request-Id", id)
	}
	return ctx
}

func healthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}
