package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"neetprep-backend/internal/logger"
	"neetprep-backend/internal/models"
	"neetprep-backend/internal/testutil"
)

// ─── Subject Handler Tests ───

func TestSubjectHandler_Create(t *testing.T) {
	db := testutil.NewDB()
	h := NewSubjectHandler(db.Subjects(), db.Chapters(), logger.Nop())

	rr := httptest.NewRecorder()
	h.Create(rr, newRequest(t, http.MethodPost, "/api/subjects", map[string]string{"name": "Physics", "color": "#3B82F6"}, nil))

	if rr.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", rr.Code, rr.Body.String())
	}
	var subject models.SubjectRecord
	decodeBody(t, rr, &subject)
	if subject.ID == 0 || subject.Name != "Physics" {
		t.Errorf("Unexpected subject: %+v", subject)
	}
}

func TestSubjectHandler_CreateValidation(t *testing.T) {
	tests := []struct {
		name  string
		body  interface{}
		field string
	}{
		{"missing name", map[string]string{"color": "#3B82F6"}, "name"},
		{"bad color", map[string]string{"name": "Physics", "color": "blue"}, "color"},
		{"missing color", map[string]string{"name": "Physics"}, "color"},
		{"color with alpha", map[string]string{"name": "Physics", "color": "#3B82F6AA"}, "color"},
		{"short color", map[string]string{"name": "Physics", "color": "#abc"}, "color"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			db := testutil.NewDB()
			h := NewSubjectHandler(db.Subjects(), db.Chapters(), logger.Nop())

			rr := httptest.NewRecorder()
			h.Create(rr, newRequest(t, http.MethodPost, "/api/subjects", tc.body, nil))

			if rr.Code != http.StatusBadRequest {
				t.Fatalf("Expected 400, got %d", rr.Code)
			}
			resp := decodeError(t, rr)
			if _, ok := resp.Error.Fields[tc.field]; !ok {
				t.Errorf("Expected field error for %q, got %v", tc.field, resp.Error.Fields)
			}
			if resp.Error.RequestID != "test-request" {
				t.Errorf("Expected request id echoed, got %q", resp.Error.RequestID)
			}
		})
	}
}

func TestSubjectHandler_InvalidJSON(t *testing.T) {
	db := testutil.NewDB()
	h := NewSubjectHandler(db.Subjects(), db.Chapters(), logger.Nop())

	rr := httptest.NewRecorder()
	h.Create(rr, newRequest(t, http.MethodPost, "/api/subjects", "{not json", nil))
	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", rr.Code)
	}
}

func TestSubjectHandler_Delete(t *testing.T) {
	db := testutil.NewDB()
	h := NewSubjectHandler(db.Subjects(), db.Chapters(), logger.Nop())

	tests := []struct {
		name     string
		id       string
		expected int
	}{
		{"not a number", "abc", http.StatusBadRequest},
		{"zero", "0", http.StatusBadRequest},
		{"missing", "42", http.StatusNotFound},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			h.Delete(rr, newRequest(t, http.MethodDelete, "/api/subjects/"+tc.id, nil, map[string]string{"id": tc.id}))
			if rr.Code != tc.expected {
				t.Errorf("Expected %d, got %d", tc.expected, rr.Code)
			}
		})
	}
}

func TestSubjectHandler_StoreFailure(t *testing.T) {
	db := testutil.NewDB()
	db.SetFailures(true, true)
	h := NewSubjectHandler(db.Subjects(), db.Chapters(), logger.Nop())

	rr := httptest.NewRecorder()
	h.List(rr, newRequest(t, http.MethodGet, "/api/subjects", nil, nil))
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("Expected 500, got %d", rr.Code)
	}
	if resp := decodeError(t, rr); resp.Error.Code != "INTERNAL_ERROR" {
		t.Errorf("Expected INTERNAL_ERROR, got %q", resp.Error.Code)
	}
}

// ─── Chapter Handler Tests ───

func seedSubject(t *testing.T, db *testutil.DB) models.SubjectRecord {
	t.Helper()
	s := &models.SubjectRecord{Name: "Physics", Color: "#3B82F6"}
	if err := db.Subjects().Create(t.Context(), s); err != nil {
		t.Fatalf("seed subject: %v", err)
	}
	return *s
}

func TestChapterHandler_Create(t *testing.T) {
	db := testutil.NewDB()
	subject := seedSubject(t, db)
	h := NewChapterHandler(db.Chapters(), logger.Nop())

	rr := httptest.NewRecorder()
	h.Create(rr, newRequest(t, http.MethodPost, "/api/chapters", map[string]interface{}{"subjectId": subject.ID, "title": "Optics"}, nil))
	if rr.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", rr.Code, rr.Body.String())
	}
	var chapter models.ChapterRecord
	decodeBody(t, rr, &chapter)
	if chapter.Difficulty != models.DifficultyMedium || chapter.TotalQuestions != 0 {
		t.Errorf("Expected defaults applied, got %+v", chapter)
	}

	rr = httptest.NewRecorder()
	h.Create(rr, newRequest(t, http.MethodPost, "/api/chapters", map[string]interface{}{"subjectId": subject.ID, "title": "Optics"}, nil))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400 for duplicate title, got %d", rr.Code)
	}
	if resp := decodeError(t, rr); resp.Error.Fields["title"] == "" {
		t.Errorf("Expected title field error, got %v", resp.Error.Fields)
	}

	rr = httptest.NewRecorder()
	h.Create(rr, newRequest(t, http.MethodPost, "/api/chapters", map[string]interface{}{"subjectId": 999, "title": "Waves"}, nil))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400 for unknown subject, got %d", rr.Code)
	}

	rr = httptest.NewRecorder()
	h.Create(rr, newRequest(t, http.MethodPost, "/api/chapters", map[string]interface{}{"subjectId": subject.ID, "title": "Heat", "difficulty": "extreme"}, nil))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400 for bad difficulty, got %d", rr.Code)
	}
}

func TestChapterHandler_Get(t *testing.T) {
	db := testutil.NewDB()
	subject := seedSubject(t, db)
	chapter := &models.ChapterRecord{SubjectID: subject.ID, Title: "Optics", Difficulty: models.DifficultyMedium}
	db.Chapters().Create(t.Context(), chapter)
	h := NewChapterHandler(db.Chapters(), logger.Nop())

	rr := httptest.NewRecorder()
	h.Get(rr, newRequest(t, http.MethodGet, "/api/chapters/1", nil, map[string]string{"id": "999"}))
	if rr.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", rr.Code)
	}
}

// ─── Question Handler Tests ───

func bulkBody(chapterID int64, correct int) map[string]interface{} {
	return map[string]interface{}{
		"chapterId": chapterID,
		"questions": []map[string]interface{}{
			{"question": "Unit of force?", "optionA": "Joule", "optionB": "Newton", "optionC": "Watt", "optionD": "Pascal", "correctAnswer": correct},
		},
	}
}

func setupChapter(t *testing.T, db *testutil.DB) models.ChapterRecord {
	t.Helper()
	subject := seedSubject(t, db)
	chapter := &models.ChapterRecord{SubjectID: subject.ID, Title: "Laws of Motion", Difficulty: models.DifficultyMedium}
	if err := db.Chapters().Create(t.Context(), chapter); err != nil {
		t.Fatalf("seed chapter: %v", err)
	}
	return *chapter
}

func TestQuestionHandler_CreateBulk(t *testing.T) {
	db := testutil.NewDB()
	chapter := setupChapter(t, db)
	h := NewQuestionHandler(db.Questions(), logger.Nop())

	rr := httptest.NewRecorder()
	h.CreateBulk(rr, newRequest(t, http.MethodPost, "/api/questions/bulk", bulkBody(chapter.ID, 1), nil))
	if rr.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp models.BulkQuestionsResponse
	decodeBody(t, rr, &resp)
	if !resp.Success || resp.CreatedCount != 1 || len(resp.Questions) != 1 {
		t.Fatalf("Unexpected response: %+v", resp)
	}
	q := resp.Questions[0]
	if q.OptionB != "Newton" || q.CorrectAnswer != 1 {
		t.Errorf("Options not stored positionally: %+v", q)
	}
	if q.Explanation != models.DefaultExplanation || q.Difficulty != models.DifficultyMedium {
		t.Errorf("Expected defaults applied, got %+v", q)
	}

	got, _ := db.Chapters().GetByID(t.Context(), chapter.ID)
	if got.TotalQuestions != 1 {
		t.Errorf("Expected totalQuestions 1, got %d", got.TotalQuestions)
	}
}

func TestQuestionHandler_CreateBulkValidation(t *testing.T) {
	db := testutil.NewDB()
	chapter := setupChapter(t, db)
	h := NewQuestionHandler(db.Questions(), logger.Nop())

	rr := httptest.NewRecorder()
	h.CreateBulk(rr, newRequest(t, http.MethodPost, "/api/questions/bulk", bulkBody(chapter.ID, 4), nil))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", rr.Code)
	}
	resp := decodeError(t, rr)
	if resp.Message == "" {
		t.Error("Expected top-level message on bulk failure")
	}
	if _, ok := resp.Error.Fields["questions[0].correctAnswer"]; !ok {
		t.Errorf("Expected correctAnswer field error, got %v", resp.Error.Fields)
	}

	rr = httptest.NewRecorder()
	h.CreateBulk(rr, newRequest(t, http.MethodPost, "/api/questions/bulk", map[string]interface{}{"chapterId": chapter.ID, "questions": []interface{}{}}, nil))
	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for empty question list, got %d", rr.Code)
	}

	rr = httptest.NewRecorder()
	h.CreateBulk(rr, newRequest(t, http.MethodPost, "/api/questions/bulk", bulkBody(999, 0), nil))
	if rr.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for unknown chapter, got %d", rr.Code)
	}

	got, _ := db.Chapters().GetByID(t.Context(), chapter.ID)
	if got.TotalQuestions != 0 {
		t.Errorf("Rejected requests must not change the counter, got %d", got.TotalQuestions)
	}
}

func TestQuestionHandler_DeleteDecrementsCounter(t *testing.T) {
	db := testutil.NewDB()
	chapter := setupChapter(t, db)
	h := NewQuestionHandler(db.Questions(), logger.Nop())

	created, err := db.Questions().CreateBulk(t.Context(), chapter.ID, []models.QuestionRecord{{Question: "a"}, {Question: "b"}})
	if err != nil {
		t.Fatalf("seed questions: %v", err)
	}

	id := created[0].ID
	rr := httptest.NewRecorder()
	h.Delete(rr, newRequest(t, http.MethodDelete, "/api/questions/x", nil, map[string]string{"id": itoa(id)}))
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rr.Code)
	}

	got, _ := db.Chapters().GetByID(t.Context(), chapter.ID)
	if got.TotalQuestions != 1 {
		t.Errorf("Expected totalQuestions 1 after delete, got %d", got.TotalQuestions)
	}

	rr = httptest.NewRecorder()
	h.Delete(rr, newRequest(t, http.MethodDelete, "/api/questions/x", nil, map[string]string{"id": itoa(id)}))
	if rr.Code != http.StatusNotFound {
		t.Errorf("Expected 404 on second delete, got %d", rr.Code)
	}
}

// ─── Storage Handler Tests ───

func TestStorageHandler_CreateFileValidation(t *testing.T) {
	tests := []struct {
		name  string
		body  map[string]interface{}
		field string
	}{
		{"missing path", map[string]interface{}{"name": "a.pdf", "type": "pdf"}, "path"},
		{"missing name", map[string]interface{}{"type": "pdf", "path": "/a.pdf"}, "name"},
		{"unknown type", map[string]interface{}{"name": "a.exe", "type": "binary", "path": "/a.exe"}, "type"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			db := testutil.NewDB()
			h := NewStorageHandler(db.Files(), db.Folders(), logger.Nop())

			rr := httptest.NewRecorder()
			h.CreateFile(rr, newRequest(t, http.MethodPost, "/api/files", tc.body, nil))
			if rr.Code != http.StatusBadRequest {
				t.Fatalf("Expected 400, got %d", rr.Code)
			}
			if resp := decodeError(t, rr); resp.Error.Fields[tc.field] == "" {
				t.Errorf("Expected %q field error, got %v", tc.field, resp.Error.Fields)
			}
		})
	}
}

func TestStorageHandler_ListNewestFirst(t *testing.T) {
	db := testutil.NewDB()
	h := NewStorageHandler(db.Files(), db.Folders(), logger.Nop())

	for _, name := range []string{"physics", "chemistry"} {
		rr := httptest.NewRecorder()
		h.CreateFolder(rr, newRequest(t, http.MethodPost, "/api/folders", map[string]string{"name": name, "path": "/" + name}, nil))
		if rr.Code != http.StatusCreated {
			t.Fatalf("Expected 201, got %d", rr.Code)
		}
	}

	rr := httptest.NewRecorder()
	h.ListFolders(rr, newRequest(t, http.MethodGet, "/api/folders", nil, nil))
	var folders []models.FolderRecord
	decodeBody(t, rr, &folders)
	if len(folders) != 2 || folders[0].Name != "chemistry" {
		t.Errorf("Expected newest folder first, got %+v", folders)
	}
}

func TestStorageHandler_CreateFileWithSize(t *testing.T) {
	db := testutil.NewDB()
	h := NewStorageHandler(db.Files(), db.Folders(), logger.Nop())

	rr := httptest.NewRecorder()
	h.CreateFile(rr, newRequest(t, http.MethodPost, "/api/files", map[string]string{"name": "notes.pdf", "type": "pdf", "size": "12.5 KB", "path": "/notes.pdf"}, nil))
	if rr.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d", rr.Code)
	}
	var file models.FileRecord
	decodeBody(t, rr, &file)
	if file.Size == nil || *file.Size != "12.5 KB" {
		t.Errorf("Expected size kept, got %v", file.Size)
	}
}

// ─── Message Handler Tests ───

func TestMessageHandler_CreateAndClear(t *testing.T) {
	db := testutil.NewDB()
	h := NewMessageHandler(db.Messages(), logger.Nop())

	rr := httptest.NewRecorder()
	h.Create(rr, newRequest(t, http.MethodPost, "/api/messages", map[string]string{"text": "hi"}, nil))
	if rr.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d", rr.Code)
	}
	var msg models.MessageRecord
	decodeBody(t, rr, &msg)
	if msg.Sender != models.SenderUser || msg.ID == 0 {
		t.Errorf("Expected default sender and assigned id, got %+v", msg)
	}

	rr = httptest.NewRecorder()
	h.Create(rr, newRequest(t, http.MethodPost, "/api/messages", map[string]string{"sender": "user"}, nil))
	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for missing text, got %d", rr.Code)
	}

	rr = httptest.NewRecorder()
	h.Clear(rr, newRequest(t, http.MethodDelete, "/api/messages", nil, nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rr.Code)
	}
	var ok models.SuccessResponse
	decodeBody(t, rr, &ok)
	if !ok.Success {
		t.Error("Expected success true")
	}

	list, _ := db.Messages().List(t.Context())
	if len(list) != 0 {
		t.Errorf("Expected empty log after clear, got %d", len(list))
	}
}

// ─── Health ───

func TestHealthHandler(t *testing.T) {
	db := testutil.NewDB()
	h := NewHealthHandler(db)

	rr := httptest.NewRecorder()
	h.Check(rr, newRequest(t, http.MethodGet, "/health", nil, nil))
	if rr.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d", rr.Code)
	}

	db.SetFailures(true, false)
	rr = httptest.NewRecorder()
	h.Check(rr, newRequest(t, http.MethodGet, "/health", nil, nil))
	if rr.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected 503, got %d", rr.Code)
	}
}
