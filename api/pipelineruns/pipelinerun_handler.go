package pipelineruns

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"strings"
	"time"

	radixutils "github.com/equinor/radix-common/utils"
	"github.com/equinor/radix-common/utils/slice"
	"github.com/equinor/radix-console-api/api/metrics"
	pipelineRunModels "github.com/equinor/radix-console-api/api/pipelineruns/models"
	"github.com/equinor/radix-console-api/api/pods"
	"github.com/equinor/radix-console-api/api/utils/logs"
	"github.com/equinor/radix-console-api/api/utils/tekton"
	"github.com/equinor/radix-console-api/internal/navigation"
	"github.com/equinor/radix-console-api/models"
	"github.com/rs/xid"
	"github.com/rs/zerolog/log"
	pipelinev1 "github.com/tektoncd/pipeline/pkg/apis/pipeline/v1"
	k8serrors "k8s.io/apimachinery/pkg/api/errors"
)

// NoLogsMessage returned as log when there is neither an active task run nor a pipeline run message
const NoLogsMessage = "No Logs Found"

// PipelineRunHandler Instance variables
type PipelineRunHandler struct {
	userAccount models.Account
	owner       string
	store       *ViewerStore
}

// Init Constructor
func Init(accounts models.Accounts, store *ViewerStore) PipelineRunHandler {
	return PipelineRunHandler{
		userAccount: accounts.UserAccount,
		owner:       getOwner(accounts),
		store:       store,
	}
}

// GetTaskRuns Get the ordered task runs of a pipeline run with the default active item
func (h PipelineRunHandler) GetTaskRuns(ctx context.Context, namespace, pipelineRunName string) (*pipelineRunModels.Navigation, error) {
	_, set, taskRuns, err := h.readPipelineRun(ctx, namespace, pipelineRunName)
	if err != nil {
		return nil, err
	}
	navigationModel := buildNavigation(navigation.NewModel(set), taskRuns)
	return &navigationModel, nil
}

// CreateLogViewer Opens a log viewer for the pipeline run
func (h PipelineRunHandler) CreateLogViewer(ctx context.Context, namespace, pipelineRunName string) (*pipelineRunModels.LogViewer, error) {
	pipelineRun, set, taskRuns, err := h.readPipelineRun(ctx, namespace, pipelineRunName)
	if err != nil {
		return nil, err
	}

	session := &viewerSession{
		id:              xid.New().String(),
		owner:           h.owner,
		namespace:       namespace,
		pipelineRunName: pipelineRunName,
		pipelineRun:     pipelineRun,
		taskRuns:        taskRuns,
		model:           navigation.NewModel(set),
	}
	h.store.add(session)
	log.Ctx(ctx).Debug().Str("viewerId", session.id).Str("pipelineRun", pipelineRunName).Msg("log viewer opened")

	session.mu.Lock()
	defer session.mu.Unlock()
	return session.toLogViewer(), nil
}

// GetLogViewer Re-reads the task runs of the pipeline run into the log viewer and returns its state
func (h PipelineRunHandler) GetLogViewer(ctx context.Context, namespace, pipelineRunName, viewerId string) (*pipelineRunModels.LogViewer, error) {
	session, err := h.getSession(namespace, pipelineRunName, viewerId)
	if err != nil {
		return nil, err
	}

	pipelineRun, set, taskRuns, err := h.readPipelineRun(ctx, namespace, pipelineRunName)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()
	session.pipelineRun = pipelineRun
	session.taskRuns = taskRuns
	session.model.Replace(set)
	return session.toLogViewer(), nil
}

// SelectActiveItem Selects the task run to show logs for
func (h PipelineRunHandler) SelectActiveItem(ctx context.Context, namespace, pipelineRunName, viewerId string, selection pipelineRunModels.ActiveItemSelection) (*pipelineRunModels.LogViewer, error) {
	if len(strings.TrimSpace(selection.TaskRun)) == 0 {
		return nil, pipelineRunModels.MissingTaskRunError()
	}
	session, err := h.getSession(namespace, pipelineRunName, viewerId)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()
	if _, ok := session.model.Record(selection.TaskRun); !ok {
		return nil, pipelineRunModels.TaskRunNotFoundError(pipelineRunName, selection.TaskRun)
	}
	session.model.Select(selection.TaskRun)
	metrics.AddLogViewerSelection()
	log.Ctx(ctx).Debug().Str("viewerId", viewerId).Str("taskRun", selection.TaskRun).Msg("task run selected")
	return session.toLogViewer(), nil
}

// DeleteLogViewer Closes the log viewer
func (h PipelineRunHandler) DeleteLogViewer(_ context.Context, namespace, pipelineRunName, viewerId string) error {
	if _, err := h.getSession(namespace, pipelineRunName, viewerId); err != nil {
		return err
	}
	h.store.remove(viewerId)
	return nil
}

// GetLogViewerLog Log of the active task run. Falls back to the message of the pipeline run when there is no
// active task run, and to NoLogsMessage when there is no message either
func (h PipelineRunHandler) GetLogViewerLog(ctx context.Context, namespace, pipelineRunName, viewerId string, params logs.Params) (io.ReadCloser, error) {
	session, err := h.getSession(namespace, pipelineRunName, viewerId)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	activeItem, hasActive := session.model.ActiveItem()
	record, hasRecord := session.model.ActiveRecord()
	message, hasMessage := tekton.GetFirstConditionMessage(session.pipelineRun)
	session.mu.Unlock()

	switch {
	case hasRecord && len(record.PodName) > 0:
		return pods.Init(h.userAccount.Client).GetPodLog(ctx, namespace, record.PodName, params)
	case hasActive && !hasRecord:
		return nil, pipelineRunModels.TaskRunNotFoundError(pipelineRunName, activeItem)
	case !hasActive && hasMessage:
		return io.NopCloser(strings.NewReader(message)), nil
	default:
		return io.NopCloser(strings.NewReader(NoLogsMessage)), nil
	}
}

func (h PipelineRunHandler) getSession(namespace, pipelineRunName, viewerId string) (*viewerSession, error) {
	session, ok := h.store.get(viewerId)
	if !ok || session.owner != h.owner || session.namespace != namespace || session.pipelineRunName != pipelineRunName {
		return nil, pipelineRunModels.LogViewerNotFoundError(viewerId)
	}
	return session, nil
}

// getOwner a log viewer is only visible to the bearer token and impersonation that opened it
func getOwner(accounts models.Accounts) string {
	impersonation := accounts.GetImpersonation()
	owner := strings.Join(append([]string{accounts.GetToken(), impersonation.User}, impersonation.Groups...), "\n")
	sum := sha256.Sum256([]byte(owner))
	return hex.EncodeToString(sum[:])
}

func (h PipelineRunHandler) readPipelineRun(ctx context.Context, namespace, pipelineRunName string) (*pipelinev1.PipelineRun, navigation.Set, map[string]pipelinev1.TaskRun, error) {
	pipelineRun, err := tekton.GetPipelineRun(ctx, h.userAccount.TektonClient, namespace, pipelineRunName)
	if err != nil {
		if k8serrors.IsNotFound(err) {
			return nil, nil, nil, pipelineRunModels.PipelineRunNotFoundError(namespace, pipelineRunName)
		}
		return nil, nil, nil, err
	}
	set, taskRuns, err := tekton.GetTaskRunSet(ctx, h.userAccount.TektonClient, pipelineRun)
	if err != nil {
		return nil, nil, nil, err
	}
	return pipelineRun, set, taskRuns, nil
}

func (s *viewerSession) toLogViewer() *pipelineRunModels.LogViewer {
	return &pipelineRunModels.LogViewer{
		Id:              s.id,
		Namespace:       s.namespace,
		PipelineRunName: s.pipelineRunName,
		Navigation:      buildNavigation(s.model, s.taskRuns),
	}
}

func buildNavigation(model *navigation.Model, taskRuns map[string]pipelinev1.TaskRun) pipelineRunModels.Navigation {
	result := pipelineRunModels.Navigation{
		TaskRuns: slice.Map(model.Records(), func(record navigation.Record) pipelineRunModels.TaskRun {
			taskRun := taskRuns[record.Name]
			return pipelineRunModels.TaskRun{
				Name:        record.Name,
				DisplayName: record.DisplayName(),
				Status:      string(tekton.GetTaskRunStatus(&taskRun)),
				PodName:     record.PodName,
				Started:     formatTime(record.StartTime),
				Ended:       formatTime(record.CompletionTime),
			}
		}),
		Touched: model.Touched(),
	}
	if activeItem, ok := model.ActiveItem(); ok {
		result.ActiveItem = activeItem
	}
	if model.Len() == 0 {
		result.Message = pipelineRunModels.NoTaskRunsMessage
	}
	return result
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return radixutils.FormatTimestamp(*t)
}
