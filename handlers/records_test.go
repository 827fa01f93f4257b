// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielhkuo/request-desk/models"
	"github.com/danielhkuo/request-desk/testutil"
)

func TestHome(t *testing.T) {
	env := newTestEnv(t)

	w := httptest.NewRecorder()
	env.records.Home(w, testutil.MakeRequest("GET", "/", nil))

	testutil.AssertStatus(t, w, http.StatusOK)
	var resp models.FormResponse
	testutil.AssertJSON(t, w, &resp)

	if resp.Form != "request" {
		t.Errorf("Expected form 'request', got %q", resp.Form)
	}
	if len(resp.Fields) != len(models.FormFields) {
		t.Errorf("Expected %d fields, got %d", len(models.FormFields), len(resp.Fields))
	}
	if resp.AttachmentField != "photo" {
		t.Errorf("Expected attachment field 'photo', got %q", resp.AttachmentField)
	}
}

func TestSubmitForm_URLEncoded(t *testing.T) {
	env := newTestEnv(t)
	fields := testutil.ValidFields()

	w := httptest.NewRecorder()
	env.records.SubmitForm(w, testutil.MakeRequest("POST", "/book-form", testutil.FormValues(fields)))

	testutil.AssertStatus(t, w, http.StatusCreated)
	var resp models.ThanksResponse
	testutil.AssertJSON(t, w, &resp)

	if resp.Name != fields.Name || resp.Email != fields.Email {
		t.Errorf("Expected thanks for %s <%s>, got %+v", fields.Name, fields.Email, resp)
	}

	rec, err := env.store.GetByID(context.Background(), resp.ID)
	if err != nil {
		t.Fatalf("Record not stored: %v", err)
	}
	if rec.RecordFields != fields {
		t.Errorf("Stored fields mismatch: %+v", rec.RecordFields)
	}
	if rec.Attachment != models.NoAttachment {
		t.Errorf("Expected %q attachment, got %q", models.NoAttachment, rec.Attachment)
	}
}

func TestSubmitForm_MultipartWithPhoto(t *testing.T) {
	env := newTestEnv(t)

	req := testutil.MakeMultipartRequest(t, "POST", "/book-form",
		testutil.FormValues(testutil.ValidFields()), "badge.jpg", "jpeg-bytes")
	w := httptest.NewRecorder()
	env.records.SubmitForm(w, req)

	testutil.AssertStatus(t, w, http.StatusCreated)
	var resp models.ThanksResponse
	testutil.AssertJSON(t, w, &resp)

	rec, err := env.store.GetByID(context.Background(), resp.ID)
	if err != nil {
		t.Fatal(err)
	}
	if rec.Attachment != "badge.jpg" {
		t.Errorf("Expected attachment badge.jpg, got %q", rec.Attachment)
	}

	// Stored file is served back
	w = httptest.NewRecorder()
	env.records.Attachment(w, withID(testutil.MakeRequest("GET", "/uploads/badge.jpg", nil), "name", "badge.jpg"))
	testutil.AssertStatus(t, w, http.StatusOK)
	if w.Body.String() != "jpeg-bytes" {
		t.Errorf("Expected stored bytes, got %q", w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "image/jpeg" {
		t.Errorf("Expected image/jpeg, got %q", ct)
	}
}

func TestSubmitForm_MultipartWithoutPhoto(t *testing.T) {
	env := newTestEnv(t)

	req := testutil.MakeMultipartRequest(t, "POST", "/book-form",
		testutil.FormValues(testutil.ValidFields()), "", "")
	w := httptest.NewRecorder()
	env.records.SubmitForm(w, req)

	testutil.AssertStatus(t, w, http.StatusCreated)
	var resp models.ThanksResponse
	testutil.AssertJSON(t, w, &resp)

	rec, err := env.store.GetByID(context.Background(), resp.ID)
	if err != nil {
		t.Fatal(err)
	}
	if rec.Attachment != models.NoAttachment {
		t.Errorf("Expected %q, got %q", models.NoAttachment, rec.Attachment)
	}
}

func TestSubmitForm_ValidationErrors(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(*models.RecordFields)
		field  string
		code   string
	}{
		{"missing name", func(f *models.RecordFields) { f.Name = "" }, models.FieldName, models.CodeEmptyField},
		{"missing email", func(f *models.RecordFields) { f.Email = "  " }, models.FieldEmail, models.CodeInvalidFormat},
		{"bad email", func(f *models.RecordFields) { f.Email = "nobody" }, models.FieldEmail, models.CodeInvalidFormat},
		{"bad phone", func(f *models.RecordFields) { f.Phone = "5551234567" }, models.FieldPhone, models.CodeInvalidFormat},
		{"missing dept", func(f *models.RecordFields) { f.Department = "" }, models.FieldDepartment, models.CodeEmptyField},
		{"missing date", func(f *models.RecordFields) { f.Date = "" }, models.FieldDate, models.CodeEmptyField},
		{"missing sms", func(f *models.RecordFields) { f.SMS = "" }, models.FieldSMS, models.CodeEmptyField},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			env := newTestEnv(t)
			fields := testutil.ValidFields()
			tc.mutate(&fields)

			w := httptest.NewRecorder()
			env.records.SubmitForm(w, testutil.MakeRequest("POST", "/book-form", testutil.FormValues(fields)))

			testutil.AssertStatus(t, w, http.StatusUnprocessableEntity)
			var resp models.FieldErrorsResponse
			testutil.AssertJSON(t, w, &resp)

			found := false
			for _, fe := range resp.Errors {
				if fe.Field == tc.field && fe.Code == tc.code {
					found = true
				}
			}
			if !found {
				t.Errorf("Expected %s/%s in %+v", tc.field, tc.code, resp.Errors)
			}

			all, err := env.store.ListAll(context.Background())
			if err != nil {
				t.Fatal(err)
			}
			if len(all) != 0 {
				t.Errorf("Expected no records, got %d", len(all))
			}
		})
	}
}

func TestSubmitForm_TooLarge(t *testing.T) {
	env := newTestEnv(t)

	form := testutil.FormValues(testutil.ValidFields())
	form.Set(models.FieldQuery, strings.Repeat("x", int(env.cfg.MaxUploadBytes())+1))

	w := httptest.NewRecorder()
	env.records.SubmitForm(w, testutil.MakeRequest("POST", "/book-form", form))

	testutil.AssertStatus(t, w, http.StatusRequestEntityTooLarge)
}

func TestSubmitForm_InvalidAttachmentName(t *testing.T) {
	env := newTestEnv(t)

	req := testutil.MakeMultipartRequest(t, "POST", "/book-form",
		testutil.FormValues(testutil.ValidFields()), "..", "x")
	w := httptest.NewRecorder()
	env.records.SubmitForm(w, req)

	testutil.AssertStatus(t, w, http.StatusBadRequest)
}

func TestAdminRoutes_RedirectWithoutSession(t *testing.T) {
	env := newTestEnv(t)
	id := testutil.CreateTestRecord(t, env.store, testutil.ValidFields(), models.NoAttachment)
	changed := testutil.FormValues(testutil.ValidFields())
	changed.Set(models.FieldName, "Mallory")

	testCases := []struct {
		name    string
		handler http.HandlerFunc
		req     *http.Request
	}{
		{"admin home", env.records.AdminHome, testutil.MakeRequest("GET", "/admin-home", nil)},
		{"details", env.records.Details, withID(testutil.MakeRequest("GET", "/details/"+id, nil), "id", id)},
		{"edit form", env.records.EditForm, withID(testutil.MakeRequest("GET", "/edit/"+id, nil), "id", id)},
		{"apply edit", env.records.ApplyEdit, withID(testutil.MakeRequest("POST", "/edit/"+id, changed), "id", id)},
		{"delete", env.records.Delete, withID(testutil.MakeRequest("GET", "/delete/"+id, nil), "id", id)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			tc.handler(w, tc.req)
			testutil.AssertRedirect(t, w, "/login")
		})
	}

	rec, err := env.store.GetByID(context.Background(), id)
	if err != nil {
		t.Fatalf("Record should survive unauthorized requests: %v", err)
	}
	if rec.Name != testutil.ValidFields().Name {
		t.Errorf("Record altered by unauthorized edit: %q", rec.Name)
	}
}

func TestAdminRoutes_BogusCookieRedirects(t *testing.T) {
	env := newTestEnv(t)
	bogus := &http.Cookie{Name: "requestdesk_session", Value: "forged"}

	w := httptest.NewRecorder()
	env.records.AdminHome(w, testutil.MakeRequest("GET", "/admin-home", nil, bogus))
	testutil.AssertRedirect(t, w, "/login")
}

func TestAdminHome_ListsRecords(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.login(t)

	first := testutil.CreateTestRecord(t, env.store, testutil.ValidFields(), models.NoAttachment)
	second := testutil.CreateTestRecord(t, env.store, testutil.ValidFields(), "scan.pdf")

	w := httptest.NewRecorder()
	env.records.AdminHome(w, testutil.MakeRequest("GET", "/admin-home", nil, cookie))

	testutil.AssertStatus(t, w, http.StatusOK)
	var resp models.RecordListResponse
	testutil.AssertJSON(t, w, &resp)

	if len(resp.Records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(resp.Records))
	}
	ids := map[string]bool{resp.Records[0].ID: true, resp.Records[1].ID: true}
	if !ids[first] || !ids[second] {
		t.Errorf("Expected records %s and %s, got %+v", first, second, ids)
	}
}

func TestAdminHome_EmptyListIsArray(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.login(t)

	w := httptest.NewRecorder()
	env.records.AdminHome(w, testutil.MakeRequest("GET", "/admin-home", nil, cookie))

	testutil.AssertStatus(t, w, http.StatusOK)
	if !strings.Contains(w.Body.String(), `"records":[]`) {
		t.Errorf("Expected an empty array, got %s", w.Body.String())
	}
}

func TestDetailsAndEditForm(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.login(t)
	fields := testutil.ValidFields()
	id := testutil.CreateTestRecord(t, env.store, fields, "scan.pdf")

	for _, h := range []http.HandlerFunc{env.records.Details, env.records.EditForm} {
		w := httptest.NewRecorder()
		h(w, withID(testutil.MakeRequest("GET", "/details/"+id, nil, cookie), "id", id))

		testutil.AssertStatus(t, w, http.StatusOK)
		var resp models.RecordResponse
		testutil.AssertJSON(t, w, &resp)

		if resp.Record.ID != id || resp.Record.RecordFields != fields {
			t.Errorf("Unexpected record: %+v", resp.Record)
		}
		if resp.Record.Attachment != "scan.pdf" {
			t.Errorf("Expected scan.pdf, got %q", resp.Record.Attachment)
		}
	}
}

func TestDetails_NotFound(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.login(t)

	w := httptest.NewRecorder()
	env.records.Details(w, withID(testutil.MakeRequest("GET", "/details/nope", nil, cookie), "id", "nope"))
	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestApplyEdit_PreservesAttachment(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.login(t)
	id := testutil.CreateTestRecord(t, env.store, testutil.ValidFields(), "scan.pdf")

	next := models.RecordFields{
		Name:       "Grace Hopper",
		Email:      "grace@example.com",
		Phone:      "111-222-3333",
		Department: "Navy",
		Date:       "2025-05-05",
		SMS:        "no",
	}

	w := httptest.NewRecorder()
	env.records.ApplyEdit(w, withID(testutil.MakeRequest("POST", "/edit/"+id, testutil.FormValues(next), cookie), "id", id))

	testutil.AssertStatus(t, w, http.StatusOK)
	var resp models.ThanksResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.ID != id || resp.Name != next.Name || resp.Email != next.Email {
		t.Errorf("Unexpected thanks: %+v", resp)
	}

	rec, err := env.store.GetByID(context.Background(), id)
	if err != nil {
		t.Fatal(err)
	}
	if rec.RecordFields != next {
		t.Errorf("Expected full replace, got %+v", rec.RecordFields)
	}
	if rec.Attachment != "scan.pdf" {
		t.Errorf("Expected attachment preserved, got %q", rec.Attachment)
	}
}

func TestApplyEdit_NewPhoto(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.login(t)
	id := testutil.CreateTestRecord(t, env.store, testutil.ValidFields(), "scan.pdf")

	req := testutil.MakeMultipartRequest(t, "POST", "/edit/"+id,
		testutil.FormValues(testutil.ValidFields()), "new.png", "png", cookie)
	w := httptest.NewRecorder()
	env.records.ApplyEdit(w, withID(req, "id", id))

	testutil.AssertStatus(t, w, http.StatusOK)

	rec, err := env.store.GetByID(context.Background(), id)
	if err != nil {
		t.Fatal(err)
	}
	if rec.Attachment != "new.png" {
		t.Errorf("Expected new.png, got %q", rec.Attachment)
	}

	rc, err := env.files.Open(context.Background(), "new.png")
	if err != nil {
		t.Fatalf("Expected stored file: %v", err)
	}
	defer rc.Close()
	b, _ := io.ReadAll(rc)
	if string(b) != "png" {
		t.Errorf("Expected file contents 'png', got %q", b)
	}
}

func TestApplyEdit_ValidationAndNotFound(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.login(t)
	id := testutil.CreateTestRecord(t, env.store, testutil.ValidFields(), models.NoAttachment)

	bad := testutil.FormValues(testutil.ValidFields())
	bad.Set(models.FieldPhone, "555.123.4567")

	w := httptest.NewRecorder()
	env.records.ApplyEdit(w, withID(testutil.MakeRequest("POST", "/edit/"+id, bad, cookie), "id", id))
	testutil.AssertStatus(t, w, http.StatusUnprocessableEntity)

	rec, err := env.store.GetByID(context.Background(), id)
	if err != nil {
		t.Fatal(err)
	}
	if rec.Phone != testutil.ValidFields().Phone {
		t.Errorf("Rejected edit changed phone to %q", rec.Phone)
	}

	w = httptest.NewRecorder()
	good := testutil.FormValues(testutil.ValidFields())
	env.records.ApplyEdit(w, withID(testutil.MakeRequest("POST", "/edit/missing", good, cookie), "id", "missing"))
	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestDelete_Idempotent(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.login(t)
	id := testutil.CreateTestRecord(t, env.store, testutil.ValidFields(), models.NoAttachment)

	w := httptest.NewRecorder()
	env.records.Delete(w, withID(testutil.MakeRequest("GET", "/delete/"+id, nil, cookie), "id", id))
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.DeleteResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.ID != id || resp.Message != "Record deleted" {
		t.Errorf("Unexpected delete response: %+v", resp)
	}

	w = httptest.NewRecorder()
	env.records.Delete(w, withID(testutil.MakeRequest("GET", "/delete/"+id, nil, cookie), "id", id))
	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestAttachment_NotFound(t *testing.T) {
	env := newTestEnv(t)

	for _, name := range []string{"missing.png", "..", ""} {
		w := httptest.NewRecorder()
		env.records.Attachment(w, withID(testutil.MakeRequest("GET", "/uploads/x", nil), "name", name))
		testutil.AssertStatus(t, w, http.StatusNotFound)
	}
}

func TestAttachment_UnknownExtension(t *testing.T) {
	env := newTestEnv(t)
	if err := env.files.Put(context.Background(), "blob.zzz-unknown", strings.NewReader("raw"), ""); err != nil {
		t.Fatal(err)
	}

	w := httptest.NewRecorder()
	env.records.Attachment(w, withID(testutil.MakeRequest("GET", "/uploads/blob.zzz-unknown", nil), "name", "blob.zzz-unknown"))

	testutil.AssertStatus(t, w, http.StatusOK)
	if ct := w.Header().Get("Content-Type"); ct != "application/octet-stream" {
		t.Errorf("Expected application/octet-stream, got %q", ct)
	}
}
