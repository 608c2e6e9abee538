package domain

import "testing"

func TestRoleValid(t *testing.T) {
	cases := []struct {
		role Role
		want bool
	}{
		{RoleUser, true},
		{RoleAdmin, true},
		{RoleSuperAdmin, true},
		{Role("root"), false},
		{Role(""), false},
	}
	for _, c := range cases {
		if got := c.role.Valid(); got != c.want {
			t.Errorf("Role(%q).Valid() = %v, want %v", c.role, got, c.want)
		}
	}
}

func TestWalletKindValid(t *testing.T) {
	cases := []struct {
		kind WalletKind
		want bool
	}{
		{WalletEwallet, true},
		{WalletTopup, true},
		{WalletKind("savings"), false},
		{WalletKind(""), false},
	}
	for _, c := range cases {
		if got := c.kind.Valid(); got != c.want {
			t.Errorf("WalletKind(%q).Valid() = %v, want %v", c.kind, got, c.want)
		}
	}
}

func TestTxnTypeValid(t *testing.T) {
	if !TxnCredit.Valid() || !TxnDebit.Valid() {
		t.Error("credit and debit must be valid")
	}
	if TxnType("transfer").Valid() {
		t.Error("unknown type must be invalid")
	}
}

func TestKycStatusTerminal(t *testing.T) {
	cases := []struct {
		status   KycStatus
		valid    bool
		terminal bool
	}{
		{KycPending, true, false},
		{KycApproved, true, true},
		{KycRejected, true, true},
		{KycStatus("review"), false, false},
	}
	for _, c := range cases {
		if got := c.status.Valid(); got != c.valid {
			t.Errorf("KycStatus(%q).Valid() = %v, want %v", c.status, got, c.valid)
		}
		if got := c.status.Terminal(); got != c.terminal {
			t.Errorf("KycStatus(%q).Terminal() = %v, want %v", c.status, got, c.terminal)
		}
	}
}

func TestWithdrawalMethodValid(t *testing.T) {
	for _, m := range []WithdrawalMethod{WithdrawUPI, WithdrawBank, WithdrawWallet} {
		if !m.Valid() {
			t.Errorf("method %q should be valid", m)
		}
	}
	if WithdrawalMethod("cheque").Valid() {
		t.Error("unknown method must be invalid")
	}
}
