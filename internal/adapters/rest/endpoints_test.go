package rest

import (
	"context"
	"errors"
	"testing"

	"github.com/ogurasousui/codex-rest-clean-arch/internal/core/employee"
)

func TestMakeEndpoints_DoesNotEvaluateEagerly(t *testing.T) {
	t.Parallel()

	stub := &stubEmployeeUseCase{}
	endpoints := MakeEndpoints(stub)

	if stub.calls != 0 {
		t.Fatalf("building endpoints must not invoke the use case, got %d calls", stub.calls)
	}

	if _, err := endpoints.ListEmployeesEndpoint(context.Background(), listEmployeesRequest{}); err != nil {
		t.Fatalf("endpoint invocation returned error: %v", err)
	}
	if stub.calls != 1 {
		t.Fatalf("expected exactly one use case call after invocation, got %d", stub.calls)
	}
}

func TestGetEmployeeEndpoint_NotFoundIsStructural(t *testing.T) {
	t.Parallel()

	stub := &stubEmployeeUseCase{getErr: employee.ErrEmployeeNotFound}
	endpoints := MakeEndpoints(stub)

	response, err := endpoints.GetEmployeeEndpoint(context.Background(), getEmployeeRequest{ID: 99})
	if err != nil {
		t.Fatalf("absence must not surface as an endpoint error, got %v", err)
	}

	resp, ok := response.(getEmployeeResponse)
	if !ok {
		t.Fatalf("unexpected response type %T", response)
	}
	if !errors.Is(resp.Failed(), employee.ErrEmployeeNotFound) {
		t.Fatalf("expected ErrEmployeeNotFound in response, got %v", resp.Failed())
	}
}

func TestDeleteEmployeeEndpoint_CarriesSnapshot(t *testing.T) {
	t.Parallel()

	snapshot := &employee.Employee{ID: 1, Name: "Alice", DepartmentCode: "D1", Salary: 1000}
	stub := &stubEmployeeUseCase{deleteOut: snapshot}
	endpoints := MakeEndpoints(stub)

	response, err := endpoints.DeleteEmployeeEndpoint(context.Background(), deleteEmployeeRequest{ID: 1})
	if err != nil {
		t.Fatalf("endpoint invocation returned error: %v", err)
	}

	resp := response.(deleteEmployeeResponse)
	if resp.Failed() != nil {
		t.Fatalf("unexpected business error: %v", resp.Failed())
	}
	if resp.Employee != snapshot {
		t.Fatalf("expected the pre-deletion snapshot, got %+v", resp.Employee)
	}
}

func TestCodeFrom(t *testing.T) {
	t.Parallel()

	if got := codeFrom(employee.ErrEmployeeNotFound); got != 404 {
		t.Fatalf("expected 404 for not found, got %d", got)
	}
	if got := codeFrom(errBadRequest); got != 400 {
		t.Fatalf("expected 400 for bad request, got %d", got)
	}
	if got := codeFrom(errBadRouting); got != 400 {
		t.Fatalf("expected 400 for bad routing, got %d", got)
	}
	if got := codeFrom(errors.New("boom")); got != 500 {
		t.Fatalf("expected 500 for unknown error, got %d", got)
	}
}
