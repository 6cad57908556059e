package models

import (
	tektonclient "github.com/tektoncd/pipeline/pkg/client/clientset/versioned"
	"k8s.io/client-go/kubernetes"
)

// Account Holds kubernetes account sessions
type Account struct {
	Client       kubernetes.Interface
	TektonClient tektonclient.Interface
}
