package accounts

import (
	"time"

	"github.com/runpro9ja/adminhub/internal/app/system/viewload"
	"github.com/runpro9ja/adminhub/internal/domain/models"
)

var sampleCreated = time.Date(2025, time.October, 11, 9, 30, 0, 0, time.UTC)

var sampleAccounts = viewload.NewFixture(
	models.Account{ID: "sample-1", Username: "grace.okafor", FullName: "Grace Okafor", Email: "grace@example.com", Role: "customer", CreatedAt: &sampleCreated},
	models.Account{ID: "sample-2", Username: "musa.bello", FullName: "Musa Bello", Email: "musa@example.com", Role: "customer", CreatedAt: &sampleCreated},
	models.Account{ID: "sample-3", Username: "thompson.jacinta", FullName: "Thompson Jacinta", Email: "jacinta@example.com", Role: "customer", CreatedAt: &sampleCreated},
)
