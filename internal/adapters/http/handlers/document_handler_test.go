package handlers_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/irebix/LayerVisSync/internal/adapters/http/dto"
	"github.com/irebix/LayerVisSync/internal/adapters/http/handlers"
	"github.com/irebix/LayerVisSync/internal/domain"
	"github.com/irebix/LayerVisSync/internal/domain/layer"
	"github.com/irebix/LayerVisSync/mocks"
)

func newDocumentHandler(t *testing.T) (*handlers.DocumentHandler, *mocks.MockDocumentEditor) {
	t.Helper()
	editor := mocks.NewMockDocumentEditor(t)
	return handlers.NewDocumentHandler(editor), editor
}

func TestTree_Success(t *testing.T) {
	t.Parallel()
	h, editor := newDocumentHandler(t)

	editor.EXPECT().Tree(mock.Anything).Return([]layer.Node{
		{ID: 2, Name: "Face", Visible: true, Children: []layer.Node{{ID: 3, Name: "Eyes"}}},
	}, nil)

	rec := httptest.NewRecorder()
	h.Tree(rec, httptest.NewRequest(http.MethodGet, "/api/v1/document/layers", nil))

	requireStatus(t, rec, http.StatusOK)
	resp := decodeJSON[dto.TreeResponse](t, rec)
	if len(resp.Layers) != 1 || len(resp.Layers[0].Children) != 1 {
		t.Fatalf("resp = %+v, want one root with one child", resp)
	}
	if resp.Layers[0].Children[0].Visible {
		t.Error("child Visible = true, want false")
	}
}

func TestAddLayer_Success(t *testing.T) {
	t.Parallel()
	h, editor := newDocumentHandler(t)

	editor.EXPECT().AddLayer(mock.Anything, layer.Spec{Name: "Nose", Visible: true, Parent: 2}).
		Return(layer.ID(10), nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/document/layers", jsonBody(t, dto.CreateLayerRequest{Name: "Nose", Parent: 2}))
	h.AddLayer(rec, req)

	requireStatus(t, rec, http.StatusCreated)
	resp := decodeJSON[dto.CreatedLayerResponse](t, rec)
	if resp.ID != 10 {
		t.Errorf("ID = %d, want 10", resp.ID)
	}
}

func TestAddLayer_ParentNotFound(t *testing.T) {
	t.Parallel()
	h, editor := newDocumentHandler(t)

	editor.EXPECT().AddLayer(mock.Anything, mock.AnythingOfType("layer.Spec")).Return(layer.ID(0), domain.ErrNotFound)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/document/layers", bytes.NewBufferString(`{"name":"Nose","parent":42}`))
	h.AddLayer(rec, req)

	requireStatus(t, rec, http.StatusNotFound)
}

func TestAddLayer_InvalidBody(t *testing.T) {
	t.Parallel()
	h, _ := newDocumentHandler(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/document/layers", bytes.NewBufferString(`{"name":" "}`))
	h.AddLayer(rec, req)

	requireStatus(t, rec, http.StatusBadRequest)
	resp := decodeJSON[dto.ErrorResponse](t, rec)
	if len(resp.Errors) != 1 || resp.Errors[0].Location != "body.name" {
		t.Errorf("Errors = %+v, want one error at body.name", resp.Errors)
	}
}

func TestUpdateLayer_Success(t *testing.T) {
	t.Parallel()
	h, editor := newDocumentHandler(t)

	editor.EXPECT().UpdateLayer(mock.Anything, layer.ID(3), mock.MatchedBy(func(p layer.Patch) bool {
		return p.Visible != nil && !*p.Visible && p.Name == nil && p.Parent == nil
	})).Return(nil)

	req := withChiParams(
		httptest.NewRequest(http.MethodPatch, "/api/v1/document/layers/3", bytes.NewBufferString(`{"visible":false}`)),
		map[string]string{"id": "3"},
	)
	rec := httptest.NewRecorder()
	h.UpdateLayer(rec, req)

	requireStatus(t, rec, http.StatusNoContent)
}

func TestUpdateLayer_Cycle(t *testing.T) {
	t.Parallel()
	h, editor := newDocumentHandler(t)

	editor.EXPECT().UpdateLayer(mock.Anything, layer.ID(2), mock.Anything).
		Return(domain.NewValidationError("parent", "would create a cycle"))

	req := withChiParams(
		httptest.NewRequest(http.MethodPatch, "/api/v1/document/layers/2", bytes.NewBufferString(`{"parent":3}`)),
		map[string]string{"id": "2"},
	)
	rec := httptest.NewRecorder()
	h.UpdateLayer(rec, req)

	requireStatus(t, rec, http.StatusBadRequest)
}

func TestRemoveLayer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		id         string
		setup      func(editor *mocks.MockDocumentEditor)
		wantStatus int
	}{
		{
			name: "removed",
			id:   "4",
			setup: func(editor *mocks.MockDocumentEditor) {
				editor.EXPECT().RemoveLayer(mock.Anything, layer.ID(4)).Return(nil)
			},
			wantStatus: http.StatusNoContent,
		},
		{
			name: "missing",
			id:   "42",
			setup: func(editor *mocks.MockDocumentEditor) {
				editor.EXPECT().RemoveLayer(mock.Anything, layer.ID(42)).Return(domain.ErrNotFound)
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "bad id",
			id:         "-1",
			setup:      func(*mocks.MockDocumentEditor) {},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h, editor := newDocumentHandler(t)
			tt.setup(editor)

			req := withChiParams(httptest.NewRequest(http.MethodDelete, "/api/v1/document/layers/"+tt.id, nil),
				map[string]string{"id": tt.id})
			rec := httptest.NewRecorder()
			h.RemoveLayer(rec, req)

			requireStatus(t, rec, tt.wantStatus)
		})
	}
}

func TestSelect_Success(t *testing.T) {
	t.Parallel()
	h, editor := newDocumentHandler(t)

	editor.EXPECT().Select(mock.Anything, []layer.ID{3, 7}).Return(nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/v1/document/selection", bytes.NewBufferString(`{"ids":[3,7]}`))
	h.Select(rec, req)

	requireStatus(t, rec, http.StatusNoContent)
}

func TestSelect_Duplicate(t *testing.T) {
	t.Parallel()
	h, _ := newDocumentHandler(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/v1/document/selection", bytes.NewBufferString(`{"ids":[3,3]}`))
	h.Select(rec, req)

	requireStatus(t, rec, http.StatusBadRequest)
}
