package authprovider

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestDummyHash_MatchesStoredCost(t *testing.T) {
	cost, err := bcrypt.Cost(dummyHash())
	if err != nil {
		t.Fatalf("dummy hash: %v", err)
	}
	if cost != passwordCost {
		t.Errorf("dummy hash cost %d, stored hashes use %d", cost, passwordCost)
	}
}
