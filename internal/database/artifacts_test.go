package database

import (
	"context"
	"errors"
	"testing"

	"chainart-registry-go/internal/models"
	"chainart-registry-go/internal/store"
)

func createTestArtifact(t *testing.T, service *Service, authorId, title string) *models.Artifact {
	artifact, err := service.CreateArtifact(context.Background(), store.CreateArtifactParams{
		AuthorId:    authorId,
		CreatorName: "Test Creator",
		Title:       title,
		Category:    "painting",
		Description: "a description",
		MediaRef:    "ipfs://media/" + title,
	})
	if err != nil {
		t.Fatalf("Failed to create test artifact %s: %v", title, err)
	}
	return artifact
}

func TestCreateArtifact_DefaultsPending(t *testing.T) {
	service, cleanup := setupTestDb(t)
	defer cleanup()

	author := createTestAccount(t, service, "0xAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA", "author", models.RoleCreator)
	artifact := createTestArtifact(t, service, author.Id, "Sunrise")

	if artifact.Status != models.StatusPending {
		t.Errorf("Expected status %s, got %s", models.StatusPending, artifact.Status)
	}
	if artifact.Verified {
		t.Error("Expected verified to default to false")
	}
	if artifact.CertificateRef != "" || artifact.LicenseRef != "" {
		t.Error("Expected no certificate/license refs before approval")
	}
}

func TestCreateArtifact_UnknownAuthor(t *testing.T) {
	service, cleanup := setupTestDb(t)
	defer cleanup()

	_, err := service.CreateArtifact(context.Background(), store.CreateArtifactParams{
		AuthorId:    "no-such-author",
		CreatorName: "Ghost",
		Title:       "Orphan",
		MediaRef:    "ipfs://media/orphan",
	})
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Expected store.ErrNotFound for unknown author, got: %v", err)
	}
}

func TestApproveArtifact(t *testing.T) {
	service, cleanup := setupTestDb(t)
	defer cleanup()

	ctx := context.Background()
	author := createTestAccount(t, service, "0xAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA", "author", models.RoleCreator)
	artifact := createTestArtifact(t, service, author.Id, "Sunset")

	approved, err := service.ApproveArtifact(ctx, store.ApproveArtifactParams{
		ArtifactId:     artifact.Id,
		CertificateRef: "HC-2025-AB12",
		LicenseRef:     "Creative Commons CC AB-CD-EF 4.0",
	})
	if err != nil {
		t.Fatalf("ApproveArtifact failed: %v", err)
	}

	if approved.Status != models.StatusApproved {
		t.Errorf("Expected status %s, got %s", models.StatusApproved, approved.Status)
	}
	if !approved.Verified {
		t.Error("Expected verified to be true")
	}
	if approved.CertificateRef != "HC-2025-AB12" {
		t.Errorf("Expected certificate ref to be stored, got %q", approved.CertificateRef)
	}
	if approved.LicenseRef != "Creative Commons CC AB-CD-EF 4.0" {
		t.Errorf("Expected license ref to be stored, got %q", approved.LicenseRef)
	}
}

func TestApproveArtifact_SecondAttemptConflicts(t *testing.T) {
	service, cleanup := setupTestDb(t)
	defer cleanup()

	ctx := context.Background()
	author := createTestAccount(t, service, "0xAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA", "author", models.RoleCreator)
	artifact := createTestArtifact(t, service, author.Id, "Twice")

	first := store.ApproveArtifactParams{
		ArtifactId:     artifact.Id,
		CertificateRef: "HC-2025-1111",
		LicenseRef:     "Creative Commons CC AA-BB-CC 4.0",
	}
	if _, err := service.ApproveArtifact(ctx, first); err != nil {
		t.Fatalf("First approval failed: %v", err)
	}

	second := store.ApproveArtifactParams{
		ArtifactId:     artifact.Id,
		CertificateRef: "HC-2025-2222",
		LicenseRef:     "Creative Commons CC DD-EE-FF 4.0",
	}
	_, err := service.ApproveArtifact(ctx, second)
	if !errors.Is(err, store.ErrAlreadyApproved) {
		t.Fatalf("Expected store.ErrAlreadyApproved, got: %v", err)
	}

	// The original identifiers must survive the conflicting attempt.
	current, err := service.GetArtifactById(ctx, artifact.Id)
	if err != nil {
		t.Fatalf("GetArtifactById failed: %v", err)
	}
	if current.CertificateRef != "HC-2025-1111" {
		t.Errorf("Certificate ref was overwritten: %q", current.CertificateRef)
	}
}

func TestApproveArtifact_Missing(t *testing.T) {
	service, cleanup := setupTestDb(t)
	defer cleanup()

	_, err := service.ApproveArtifact(context.Background(), store.ApproveArtifactParams{
		ArtifactId:     "missing",
		CertificateRef: "HC-2025-0000",
		LicenseRef:     "Creative Commons CC AA-BB-CC 4.0",
	})
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Expected store.ErrNotFound, got: %v", err)
	}
}

func TestSetArtifactTxHash(t *testing.T) {
	service, cleanup := setupTestDb(t)
	defer cleanup()

	ctx := context.Background()
	author := createTestAccount(t, service, "0xAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA", "author", models.RoleCreator)
	artifact := createTestArtifact(t, service, author.Id, "Hashed")

	if err := service.SetArtifactTxHash(ctx, artifact.Id, "0x1111111111111111"); err != nil {
		t.Fatalf("SetArtifactTxHash failed: %v", err)
	}

	updated, err := service.GetArtifactById(ctx, artifact.Id)
	if err != nil {
		t.Fatalf("GetArtifactById failed: %v", err)
	}
	if updated.LedgerTxHash != "0x1111111111111111" {
		t.Errorf("Expected tx hash to be stored, got %q", updated.LedgerTxHash)
	}
}

func TestSearchApprovedArtifacts(t *testing.T) {
	service, cleanup := setupTestDb(t)
	defer cleanup()

	ctx := context.Background()
	author := createTestAccount(t, service, "0xAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA", "author", models.RoleCreator)

	approved := createTestArtifact(t, service, author.Id, "Morning Light")
	pending := createTestArtifact(t, service, author.Id, "Morning Fog")

	if _, err := service.ApproveArtifact(ctx, store.ApproveArtifactParams{
		ArtifactId:     approved.Id,
		CertificateRef: "HC-2025-AAAA",
		LicenseRef:     "Creative Commons CC AA-BB-CC 4.0",
	}); err != nil {
		t.Fatalf("ApproveArtifact failed: %v", err)
	}

	// Case-insensitive match, approved only.
	results, err := service.SearchApprovedArtifacts(ctx, "morning")
	if err != nil {
		t.Fatalf("SearchApprovedArtifacts failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("Expected 1 result, got %d", len(results))
	}
	if results[0].Id == pending.Id {
		t.Error("Search returned a pending artifact")
	}
}

func TestListArtifactsByStatus(t *testing.T) {
	service, cleanup := setupTestDb(t)
	defer cleanup()

	ctx := context.Background()
	author := createTestAccount(t, service, "0xAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA", "author", models.RoleCreator)

	first := createTestArtifact(t, service, author.Id, "One")
	createTestArtifact(t, service, author.Id, "Two")

	if _, err := service.ApproveArtifact(ctx, store.ApproveArtifactParams{
		ArtifactId:     first.Id,
		CertificateRef: "HC-2025-AAAA",
		LicenseRef:     "Creative Commons CC AA-BB-CC 4.0",
	}); err != nil {
		t.Fatalf("ApproveArtifact failed: %v", err)
	}

	pending, err := service.ListArtifactsByStatus(ctx, models.StatusPending)
	if err != nil {
		t.Fatalf("ListArtifactsByStatus failed: %v", err)
	}
	if len(pending) != 1 {
		t.Errorf("Expected 1 pending artifact, got %d", len(pending))
	}

	approvedList, err := service.ListArtifactsByStatus(ctx, models.StatusApproved)
	if err != nil {
		t.Fatalf("ListArtifactsByStatus failed: %v", err)
	}
	if len(approvedList) != 1 {
		t.Errorf("Expected 1 approved artifact, got %d", len(approvedList))
	}
}

func TestListArtifactsByAuthor(t *testing.T) {
	service, cleanup := setupTestDb(t)
	defer cleanup()

	alice := createTestAccount(t, service, "0xAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA", "alice", models.RoleCreator)
	bob := createTestAccount(t, service, "0xBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBB", "bob", models.RoleCreator)
	createTestArtifact(t, service, alice.Id, "Sunrise")
	createTestArtifact(t, service, alice.Id, "Sunset")
	createTestArtifact(t, service, bob.Id, "Moonrise")

	artifacts, err := service.ListArtifactsByAuthor(context.Background(), alice.Id)
	if err != nil {
		t.Fatalf("ListArtifactsByAuthor failed: %v", err)
	}
	if len(artifacts) != 2 {
		t.Fatalf("Expected 2 artifacts, got %d", len(artifacts))
	}
	for _, artifact := range artifacts {
		if artifact.AuthorId != alice.Id {
			t.Errorf("Unexpected author %s", artifact.AuthorId)
		}
	}
}

func TestDeleteArtifact(t *testing.T) {
	service, cleanup := setupTestDb(t)
	defer cleanup()

	ctx := context.Background()
	author := createTestAccount(t, service, "0xAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA", "author", models.RoleCreator)
	artifact := createTestArtifact(t, service, author.Id, "Doomed")

	if err := service.DeleteArtifact(ctx, artifact.Id); err != nil {
		t.Fatalf("DeleteArtifact failed: %v", err)
	}

	if _, err := service.GetArtifactById(ctx, artifact.Id); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Expected store.ErrNotFound after delete, got: %v", err)
	}

	if err := service.DeleteArtifact(ctx, artifact.Id); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Expected store.ErrNotFound on double delete, got: %v", err)
	}
}
