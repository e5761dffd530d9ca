package services

import (
	"testing"

	"borrowtrack/internal/testutil"
)

func TestCreateDocument(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewDocumentService(db)
		user := testutil.CreateTestUser(t, db)
		person := testutil.CreateTestPerson(t, db, user.ID)

		doc, err := svc.CreateDocument(user.ID, person.ID, NewDocument{
			Name:        "Aadhaar Card",
			FileType:    "Image",
			FileSize:    128,
			FileData:    "data:image/png;base64,aGVsbG8=",
			Description: "png",
		})
		testutil.AssertNoError(t, err)

		if doc.ID == "" {
			t.Fatal("expected non-empty document ID")
		}
		if doc.PersonID != person.ID {
			t.Errorf("expected person %s, got %s", person.ID, doc.PersonID)
		}
	})

	t.Run("missing_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewDocumentService(db)
		user := testutil.CreateTestUser(t, db)
		person := testutil.CreateTestPerson(t, db, user.ID)

		_, err := svc.CreateDocument(user.ID, person.ID, NewDocument{
			FileData: "data:image/png;base64,aGVsbG8=",
		})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("missing_payload", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewDocumentService(db)
		user := testutil.CreateTestUser(t, db)
		person := testutil.CreateTestPerson(t, db, user.ID)

		_, err := svc.CreateDocument(user.ID, person.ID, NewDocument{Name: "Aadhaar Card"})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("cross_owner_person", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewDocumentService(db)
		owner := testutil.CreateTestUser(t, db)
		intruder := testutil.CreateTestUser(t, db)
		person := testutil.CreateTestPerson(t, db, owner.ID)

		_, err := svc.CreateDocument(intruder.ID, person.ID, NewDocument{
			Name:     "Aadhaar Card",
			FileData: "data:image/png;base64,aGVsbG8=",
		})
		testutil.AssertAppError(t, err, "PERSON_NOT_FOUND")
	})
}

func TestGetPersonDocuments(t *testing.T) {
	t.Run("omits_payload", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewDocumentService(db)
		user := testutil.CreateTestUser(t, db)
		person := testutil.CreateTestPerson(t, db, user.ID)
		testutil.CreateTestDocument(t, db, person.ID)
		testutil.CreateTestDocument(t, db, person.ID)

		docs, err := svc.GetPersonDocuments(user.ID, person.ID)
		testutil.AssertNoError(t, err)

		if len(docs) != 2 {
			t.Fatalf("expected 2 documents, got %d", len(docs))
		}
		for _, d := range docs {
			if d.FileData != "" {
				t.Error("expected listing to omit file payload")
			}
			if d.Name == "" {
				t.Error("expected listing to include document name")
			}
		}
	})

	t.Run("cross_owner_person", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewDocumentService(db)
		owner := testutil.CreateTestUser(t, db)
		intruder := testutil.CreateTestUser(t, db)
		person := testutil.CreateTestPerson(t, db, owner.ID)
		testutil.CreateTestDocument(t, db, person.ID)

		_, err := svc.GetPersonDocuments(intruder.ID, person.ID)
		testutil.AssertAppError(t, err, "PERSON_NOT_FOUND")
	})
}

func TestGetDocumentByID(t *testing.T) {
	t.Run("includes_payload", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewDocumentService(db)
		user := testutil.CreateTestUser(t, db)
		person := testutil.CreateTestPerson(t, db, user.ID)
		created := testutil.CreateTestDocument(t, db, person.ID)

		doc, err := svc.GetDocumentByID(user.ID, created.ID)
		testutil.AssertNoError(t, err)

		if doc.FileData == "" {
			t.Error("expected document payload to be present")
		}
	})

	t.Run("cross_owner_not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewDocumentService(db)
		owner := testutil.CreateTestUser(t, db)
		intruder := testutil.CreateTestUser(t, db)
		person := testutil.CreateTestPerson(t, db, owner.ID)
		created := testutil.CreateTestDocument(t, db, person.ID)

		_, err := svc.GetDocumentByID(intruder.ID, created.ID)
		testutil.AssertAppError(t, err, "DOCUMENT_NOT_FOUND")
	})
}

func TestDeleteDocument(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewDocumentService(db)
		user := testutil.CreateTestUser(t, db)
		person := testutil.CreateTestPerson(t, db, user.ID)
		created := testutil.CreateTestDocument(t, db, person.ID)

		testutil.AssertNoError(t, svc.DeleteDocument(user.ID, created.ID))

		_, err := svc.GetDocumentByID(user.ID, created.ID)
		testutil.AssertAppError(t, err, "DOCUMENT_NOT_FOUND")
	})
}
