package services

import (
	"testing"
	"time"

	"borrowtrack/internal/listing"
	"borrowtrack/internal/models"
	"borrowtrack/internal/testutil"
)

func TestCreatePerson(t *testing.T) {
	t.Run("valid_with_contacts", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPersonService(db, NewGroupService(db))
		user := testutil.CreateTestUser(t, db)

		person, err := svc.CreatePerson(user.ID, NewPerson{
			Name:    "Ramesh Kumar",
			Address: "12 Market Road",
			Contacts: []NewContact{
				{Number: "9876543210", Tag: "mobile"},
				{Number: "0422-12345", Tag: "shop"},
			},
		})
		testutil.AssertNoError(t, err)

		if person.ID == "" {
			t.Fatal("expected non-empty person ID")
		}
		if len(person.Contacts) != 2 {
			t.Errorf("expected 2 contacts created inline, got %d", len(person.Contacts))
		}
	})

	t.Run("empty_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPersonService(db, NewGroupService(db))
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreatePerson(user.ID, NewPerson{})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("foreign_group_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPersonService(db, NewGroupService(db))
		owner := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)
		foreignGroup := testutil.CreateTestGroup(t, db, other.ID)

		_, err := svc.CreatePerson(owner.ID, NewPerson{Name: "Asha", GroupID: &foreignGroup.ID})
		testutil.AssertAppError(t, err, "GROUP_NOT_FOUND")
	})
}

func TestListPeople(t *testing.T) {
	t.Run("scoped_to_owner_with_totals", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPersonService(db, NewGroupService(db))
		user := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)

		owes := testutil.CreateTestPersonWithName(t, db, user.ID, "Asha")
		overpaid := testutil.CreateTestPersonWithName(t, db, user.ID, "Bilal")
		testutil.CreateTestPersonWithName(t, db, other.ID, "Foreign")

		testutil.CreateTestTransaction(t, db, owes.ID, models.TransactionKindBorrowed, 300)
		testutil.CreateTestTransaction(t, db, owes.ID, models.TransactionKindPaid, 100)
		testutil.CreateTestTransaction(t, db, overpaid.ID, models.TransactionKindBorrowed, 50)
		testutil.CreateTestTransaction(t, db, overpaid.ID, models.TransactionKindPaid, 80)

		roster, err := svc.ListPeople(user.ID, listing.Options{GroupID: listing.AllGroups, Sort: listing.SortByName})
		testutil.AssertNoError(t, err)

		if len(roster.People) != 2 {
			t.Fatalf("expected 2 people, got %d", len(roster.People))
		}
		if roster.Totals.Customers != 2 {
			t.Errorf("expected 2 customers in totals, got %d", roster.Totals.Customers)
		}
		// Total owed counts positive balances only; net balance includes overpayments.
		if got := roster.Totals.TotalOwed.String(); got != "200" {
			t.Errorf("expected total owed 200, got %s", got)
		}
		if got := roster.Totals.NetBalance.String(); got != "170" {
			t.Errorf("expected net balance 170, got %s", got)
		}
		if got := roster.People[0].Balance.String(); got != "200" {
			t.Errorf("expected Asha's balance 200, got %s", got)
		}
	})

	t.Run("search_by_phone_substring", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPersonService(db, NewGroupService(db))
		user := testutil.CreateTestUser(t, db)

		match := testutil.CreateTestPersonWithName(t, db, user.ID, "Asha")
		miss := testutil.CreateTestPersonWithName(t, db, user.ID, "Bilal")
		testutil.CreateTestContact(t, db, match.ID, "9876543210")
		testutil.CreateTestContact(t, db, miss.ID, "9123456789")

		roster, err := svc.ListPeople(user.ID, listing.Options{Search: "76543", Sort: listing.SortByName})
		testutil.AssertNoError(t, err)

		if len(roster.People) != 1 || roster.People[0].Name != "Asha" {
			t.Errorf("expected phone-substring search to match only Asha, got %d people", len(roster.People))
		}
		// Totals stay base-wide even when the filter narrows the listing.
		if roster.Totals.Customers != 2 {
			t.Errorf("expected totals over the whole base, got %d", roster.Totals.Customers)
		}
	})

	t.Run("group_filter", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPersonService(db, NewGroupService(db))
		user := testutil.CreateTestUser(t, db)
		group := testutil.CreateTestGroup(t, db, user.ID)

		_, err := svc.CreatePerson(user.ID, NewPerson{Name: "Grouped", GroupID: &group.ID})
		testutil.AssertNoError(t, err)
		testutil.CreateTestPersonWithName(t, db, user.ID, "Ungrouped")

		roster, err := svc.ListPeople(user.ID, listing.Options{GroupID: group.ID, Sort: listing.SortByName})
		testutil.AssertNoError(t, err)

		if len(roster.People) != 1 || roster.People[0].Name != "Grouped" {
			t.Errorf("expected only the grouped person, got %d people", len(roster.People))
		}
	})
}

func TestGetPersonByID(t *testing.T) {
	t.Run("loads_relations_and_summary", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPersonService(db, NewGroupService(db))
		user := testutil.CreateTestUser(t, db)
		person := testutil.CreateTestPerson(t, db, user.ID)
		testutil.CreateTestContact(t, db, person.ID, "9876543210")
		testutil.CreateTestDocument(t, db, person.ID)

		base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
		testutil.CreateTestTransactionAt(t, db, person.ID, models.TransactionKindBorrowed, 200, base)
		testutil.CreateTestTransactionAt(t, db, person.ID, models.TransactionKindPaid, 50, base.Add(time.Hour))

		got, err := svc.GetPersonByID(user.ID, person.ID)
		testutil.AssertNoError(t, err)

		if got.Balance.String() != "150" {
			t.Errorf("expected balance 150, got %s", got.Balance)
		}
		if got.TotalBorrowed.String() != "200" || got.TotalPaid.String() != "50" {
			t.Errorf("expected totals 200/50, got %s/%s", got.TotalBorrowed, got.TotalPaid)
		}
		if len(got.Contacts) != 1 || len(got.Documents) != 1 {
			t.Errorf("expected contacts and documents preloaded, got %d/%d", len(got.Contacts), len(got.Documents))
		}
		if len(got.Transactions) != 2 || got.Transactions[0].Kind != models.TransactionKindPaid {
			t.Error("expected transactions newest first")
		}
		if got.Documents[0].FileData != "" {
			t.Error("expected document payload omitted from the profile view")
		}
	})

	t.Run("cross_owner_not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPersonService(db, NewGroupService(db))
		owner := testutil.CreateTestUser(t, db)
		intruder := testutil.CreateTestUser(t, db)
		person := testutil.CreateTestPerson(t, db, owner.ID)

		_, err := svc.GetPersonByID(intruder.ID, person.ID)
		testutil.AssertAppError(t, err, "PERSON_NOT_FOUND")
	})
}

func TestUpdatePerson(t *testing.T) {
	t.Run("applies_only_provided_fields", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPersonService(db, NewGroupService(db))
		user := testutil.CreateTestUser(t, db)

		person, err := svc.CreatePerson(user.ID, NewPerson{Name: "Asha", Address: "Old Street"})
		testutil.AssertNoError(t, err)

		newName := "Asha Devi"
		_, err = svc.UpdatePerson(user.ID, person.ID, PersonPatch{Name: &newName})
		testutil.AssertNoError(t, err)

		got, err := svc.GetPersonByID(user.ID, person.ID)
		testutil.AssertNoError(t, err)
		if got.Name != "Asha Devi" {
			t.Errorf("expected updated name, got %q", got.Name)
		}
		if got.Address != "Old Street" {
			t.Errorf("expected address untouched, got %q", got.Address)
		}
	})

	t.Run("empty_group_id_detaches", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPersonService(db, NewGroupService(db))
		user := testutil.CreateTestUser(t, db)
		group := testutil.CreateTestGroup(t, db, user.ID)

		person, err := svc.CreatePerson(user.ID, NewPerson{Name: "Asha", GroupID: &group.ID})
		testutil.AssertNoError(t, err)

		empty := ""
		_, err = svc.UpdatePerson(user.ID, person.ID, PersonPatch{GroupID: &empty})
		testutil.AssertNoError(t, err)

		got, err := svc.GetPersonByID(user.ID, person.ID)
		testutil.AssertNoError(t, err)
		if got.GroupID != nil {
			t.Errorf("expected group detached, got %v", *got.GroupID)
		}
	})

	t.Run("rejects_empty_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPersonService(db, NewGroupService(db))
		user := testutil.CreateTestUser(t, db)
		person := testutil.CreateTestPerson(t, db, user.ID)

		empty := ""
		_, err := svc.UpdatePerson(user.ID, person.ID, PersonPatch{Name: &empty})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}
