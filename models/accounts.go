package models

import (
	"net/http"

	radixmodels "github.com/equinor/radix-common/models"
	tektonclient "github.com/tektoncd/pipeline/pkg/client/clientset/versioned"
	"k8s.io/client-go/kubernetes"
)

// NewAccounts creates a new Accounts struct
func NewAccounts(
	inClusterClient kubernetes.Interface,
	inClusterTektonClient tektonclient.Interface,
	outClusterClient kubernetes.Interface,
	outClusterTektonClient tektonclient.Interface,
	token string,
	impersonation radixmodels.Impersonation) Accounts {

	return Accounts{
		UserAccount: Account{
			Client:       outClusterClient,
			TektonClient: outClusterTektonClient,
		},
		ServiceAccount: NewServiceAccount(inClusterClient, inClusterTektonClient),
		token:          token,
		impersonation:  impersonation,
	}
}

// NewServiceAccount creates a new Account for the pod's service account
func NewServiceAccount(inClusterClient kubernetes.Interface, inClusterTektonClient tektonclient.Interface) Account {
	return Account{
		Client:       inClusterClient,
		TektonClient: inClusterTektonClient,
	}
}

// Accounts contains accounts for accessing k8s API.
type Accounts struct {
	UserAccount    Account
	ServiceAccount Account
	token          string
	impersonation  radixmodels.Impersonation
}

// GetToken Gets the token of the user account
func (accounts Accounts) GetToken() string {
	return accounts.token
}

// GetImpersonation Gets the impersonation of the user account
func (accounts Accounts) GetImpersonation() radixmodels.Impersonation {
	return accounts.impersonation
}

// ConsoleHandlerFunc Pattern for handler functions
type ConsoleHandlerFunc func(Accounts, http.ResponseWriter, *http.Request)
