package module

import "villagevisits/internal/services/api/auth/domain"

// Ports is the bundle other modules pull from auth
type Ports struct {
	Accounts domain.AccountsPort
}
