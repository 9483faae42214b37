package api

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
)

func TestPreviewReceiptUploadedDateSendsQuery(t *testing.T) {
	t.Parallel()
	harness := newTestHarness(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if request.Method != http.MethodGet {
			t.Errorf("method = %q", request.Method)
		}
		if request.URL.Path != "/api/v1/superadmin/receipts/r1/uploaded-date/preview" {
			t.Errorf("path = %q", request.URL.Path)
		}
		if got := request.URL.Query().Get("uploadedAt"); got != "2024-03-01T10:00:00Z" {
			t.Errorf("uploadedAt = %q", got)
		}
		writer.Write([]byte(`{"message":"ok","data":{"receiptId":"r1","currentUploadedAt":"2024-05-09T08:00:00Z","proposedUploadedAt":"2024-03-01T10:00:00Z","plan":"Monthly","amount":40000,"status":"approved"}}`))
	}))

	preview, err := harness.client.PreviewReceiptUploadedDate(context.Background(), "r1", "2024-03-01T10:00:00Z")
	if err != nil {
		t.Fatalf("PreviewReceiptUploadedDate: %v", err)
	}
	if preview.CurrentUploadedAt != "2024-05-09T08:00:00Z" || preview.ProposedUploadedAt != "2024-03-01T10:00:00Z" {
		t.Errorf("preview = %+v", preview)
	}
	if preview.Plan != PlanMonthly || preview.Amount != 40000 {
		t.Errorf("preview context = %+v", preview)
	}
}

func TestUpdateUserNextDueDateSendsBody(t *testing.T) {
	t.Parallel()
	type updateBody struct {
		NextDueDate string `json:"nextDueDate"`
		Reason      string `json:"reason"`
	}
	var seen updateBody
	harness := newTestHarness(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if request.Method != http.MethodPatch {
			t.Errorf("method = %q", request.Method)
		}
		if request.URL.Path != "/api/v1/superadmin/users/u7/next-due-date" {
			t.Errorf("path = %q", request.URL.Path)
		}
		if err := json.NewDecoder(request.Body).Decode(&seen); err != nil {
			t.Errorf("decoding body: %v", err)
		}
		writer.Write([]byte(`{"message":"Next due date updated"}`))
	}))

	message, err := harness.client.UpdateUserNextDueDate(context.Background(), "u7", "2024-07-01T00:00:00Z", "missed import")
	if err != nil {
		t.Fatalf("UpdateUserNextDueDate: %v", err)
	}
	if message != "Next due date updated" {
		t.Errorf("message = %q", message)
	}
	if seen.NextDueDate != "2024-07-01T00:00:00Z" || seen.Reason != "missed import" {
		t.Errorf("body = %+v", seen)
	}
}

func TestPreviewItemCreatedDateDecodesContext(t *testing.T) {
	t.Parallel()
	harness := newTestHarness(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if request.URL.Path != "/api/v1/superadmin/items/i3/created-date/preview" {
			t.Errorf("path = %q", request.URL.Path)
		}
		writer.Write([]byte(`{"message":"ok","data":{"itemId":"i3","currentCreatedAt":"2024-01-01T00:00:00Z","proposedCreatedAt":"2023-11-15T00:00:00Z","userEmail":"ada@example.com","iphoneModel":"iPhone 13","plan":"Weekly"}}`))
	}))

	preview, err := harness.client.PreviewItemCreatedDate(context.Background(), "i3", "2023-11-15T00:00:00Z")
	if err != nil {
		t.Fatalf("PreviewItemCreatedDate: %v", err)
	}
	if preview.UserEmail != "ada@example.com" || preview.IphoneModel != "iPhone 13" {
		t.Errorf("preview = %+v", preview)
	}
	if preview.ProposedCreatedAt != "2023-11-15T00:00:00Z" {
		t.Errorf("proposed = %q", preview.ProposedCreatedAt)
	}
}
