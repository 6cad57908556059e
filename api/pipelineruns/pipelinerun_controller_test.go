package pipelineruns_test

import (
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/equinor/radix-console-api/api/pipelineruns"
	pipelineRunModels "github.com/equinor/radix-console-api/api/pipelineruns/models"
	controllertest "github.com/equinor/radix-console-api/api/test"
	"github.com/equinor/radix-console-api/api/utils/tekton"
	"github.com/stretchr/testify/suite"
	pipelinev1 "github.com/tektoncd/pipeline/pkg/apis/pipeline/v1"
	tektonclientfake "github.com/tektoncd/pipeline/pkg/client/clientset/versioned/fake"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	kubefake "k8s.io/client-go/kubernetes/fake"
	"knative.dev/pkg/apis"
	duckv1 "knative.dev/pkg/apis/duck/v1"
)

const (
	namespace       = "app-ns"
	pipelineRunName = "radix-pipeline-pr"
)

var baseTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

type controllerTestSuite struct {
	suite.Suite
	kubeClient   *kubefake.Clientset
	tektonClient *tektonclientfake.Clientset
	store        *pipelineruns.ViewerStore
	controller   controllertest.Utils
}

func TestControllerTestSuite(t *testing.T) {
	suite.Run(t, new(controllerTestSuite))
}

func (s *controllerTestSuite) SetupTest() {
	s.kubeClient = kubefake.NewSimpleClientset()
	s.tektonClient = tektonclientfake.NewSimpleClientset()
	s.store = pipelineruns.NewViewerStore(10, time.Hour)
	s.controller = controllertest.NewTestUtils(s.kubeClient, s.tektonClient, pipelineruns.NewPipelineRunController(s.store))
}

func minutes(m int) *metav1.Time {
	return &metav1.Time{Time: baseTime.Add(time.Duration(m) * time.Minute)}
}

func (s *controllerTestSuite) createPipelineRun(message string) {
	pipelineRun := &pipelinev1.PipelineRun{ObjectMeta: metav1.ObjectMeta{Name: pipelineRunName, Namespace: namespace}}
	if len(message) > 0 {
		pipelineRun.Status.Conditions = duckv1.Conditions{{Type: apis.ConditionSucceeded, Status: corev1.ConditionFalse, Message: message}}
	}
	_, err := s.tektonClient.TektonV1().PipelineRuns(namespace).Create(s.T().Context(), pipelineRun, metav1.CreateOptions{})
	s.Require().NoError(err)
}

func (s *controllerTestSuite) createTaskRun(name, pipelineTask string, start, completion *metav1.Time, succeeded corev1.ConditionStatus) {
	taskRun := &pipelinev1.TaskRun{ObjectMeta: metav1.ObjectMeta{
		Name:      name,
		Namespace: namespace,
		Labels:    map[string]string{tekton.PipelineRunLabel: pipelineRunName, tekton.PipelineTaskLabel: pipelineTask},
	}}
	taskRun.Status.StartTime = start
	taskRun.Status.CompletionTime = completion
	taskRun.Status.PodName = name + "-pod"
	if len(succeeded) > 0 {
		taskRun.Status.Conditions = duckv1.Conditions{{Type: apis.ConditionSucceeded, Status: succeeded}}
	}
	_, err := s.tektonClient.TektonV1().TaskRuns(namespace).Create(s.T().Context(), taskRun, metav1.CreateOptions{})
	s.Require().NoError(err)

	pod := &corev1.Pod{
		ObjectMeta: metav1.ObjectMeta{Name: name + "-pod", Namespace: namespace},
		Spec:       corev1.PodSpec{Containers: []corev1.Container{{Name: "step-" + pipelineTask}}},
	}
	_, err = s.kubeClient.CoreV1().Pods(namespace).Create(s.T().Context(), pod, metav1.CreateOptions{})
	s.Require().NoError(err)
}

// A completed at 20, B completed at 10, C running since 30
func (s *controllerTestSuite) createDefaultTaskRuns() {
	s.createPipelineRun("")
	s.createTaskRun("tr-a", "build", minutes(0), minutes(20), corev1.ConditionTrue)
	s.createTaskRun("tr-b", "clone", minutes(0), minutes(10), corev1.ConditionTrue)
	s.createTaskRun("tr-c", "deploy", minutes(30), nil, corev1.ConditionUnknown)
}

func (s *controllerTestSuite) basePath() string {
	return fmt.Sprintf("/api/v1/namespaces/%s/pipelineruns/%s", namespace, pipelineRunName)
}

func (s *controllerTestSuite) createLogViewer() pipelineRunModels.LogViewer {
	response := <-s.controller.ExecuteRequest("POST", s.basePath()+"/logviewers")
	s.Require().Equal(http.StatusOK, response.Code)
	var logViewer pipelineRunModels.LogViewer
	s.Require().NoError(controllertest.GetResponseBody(response, &logViewer))
	return logViewer
}

func taskRunNames(navigation pipelineRunModels.Navigation) []string {
	names := make([]string, 0, len(navigation.TaskRuns))
	for _, taskRun := range navigation.TaskRuns {
		names = append(names, taskRun.Name)
	}
	return names
}

func (s *controllerTestSuite) Test_GetTaskRuns_OrderAndDefault() {
	s.createDefaultTaskRuns()

	response := <-s.controller.ExecuteRequest("GET", s.basePath()+"/taskruns")
	s.Equal(http.StatusOK, response.Code)
	var navigation pipelineRunModels.Navigation
	s.Require().NoError(controllertest.GetResponseBody(response, &navigation))

	s.Equal([]string{"tr-b", "tr-a", "tr-c"}, taskRunNames(navigation))
	s.Equal("tr-c", navigation.ActiveItem)
	s.False(navigation.Touched)
	s.Empty(navigation.Message)
	s.Equal("clone", navigation.TaskRuns[0].DisplayName)
	s.Equal(string(tekton.StatusSucceeded), navigation.TaskRuns[0].Status)
	s.Equal(string(tekton.StatusRunning), navigation.TaskRuns[2].Status)
	s.Empty(navigation.TaskRuns[2].Ended)
	s.NotEmpty(navigation.TaskRuns[2].Started)
}

func (s *controllerTestSuite) Test_GetTaskRuns_NoTaskRuns() {
	s.createPipelineRun("")

	response := <-s.controller.ExecuteRequest("GET", s.basePath()+"/taskruns")
	s.Equal(http.StatusOK, response.Code)
	var navigation pipelineRunModels.Navigation
	s.Require().NoError(controllertest.GetResponseBody(response, &navigation))
	s.Empty(navigation.TaskRuns)
	s.Empty(navigation.ActiveItem)
	s.Equal(pipelineRunModels.NoTaskRunsMessage, navigation.Message)
}

func (s *controllerTestSuite) Test_GetTaskRuns_PipelineRunNotFound() {
	response := <-s.controller.ExecuteRequest("GET", s.basePath()+"/taskruns")
	s.Equal(http.StatusNotFound, response.Code)
}

func (s *controllerTestSuite) Test_GetTaskRuns_Unauthorized() {
	s.createDefaultTaskRuns()
	response := <-s.controller.ExecuteUnAuthorizedRequest("GET", s.basePath()+"/taskruns")
	s.Equal(http.StatusForbidden, response.Code)
}

func (s *controllerTestSuite) Test_LogViewer_UntouchedFollowsDefault() {
	s.createPipelineRun("")
	s.createTaskRun("tr-a", "clone", minutes(0), nil, corev1.ConditionUnknown)

	logViewer := s.createLogViewer()
	s.NotEmpty(logViewer.Id)
	s.Equal(1, s.store.Len())
	s.Equal("tr-a", logViewer.Navigation.ActiveItem)

	s.createTaskRun("tr-b", "build", minutes(5), nil, corev1.ConditionUnknown)
	response := <-s.controller.ExecuteRequest("GET", s.basePath()+"/logviewers/"+logViewer.Id)
	s.Require().Equal(http.StatusOK, response.Code)
	s.Require().NoError(controllertest.GetResponseBody(response, &logViewer))
	s.Equal("tr-b", logViewer.Navigation.ActiveItem)
	s.False(logViewer.Navigation.Touched)
}

func (s *controllerTestSuite) Test_LogViewer_SelectionSurvivesRefresh() {
	s.createDefaultTaskRuns()
	logViewer := s.createLogViewer()

	response := <-s.controller.ExecuteRequestWithParameters("PUT", s.basePath()+"/logviewers/"+logViewer.Id+"/activeitem", pipelineRunModels.ActiveItemSelection{TaskRun: "tr-b"})
	s.Require().Equal(http.StatusOK, response.Code)
	s.Require().NoError(controllertest.GetResponseBody(response, &logViewer))
	s.Equal("tr-b", logViewer.Navigation.ActiveItem)
	s.True(logViewer.Navigation.Touched)

	s.createTaskRun("tr-d", "scan", minutes(40), nil, corev1.ConditionUnknown)
	response = <-s.controller.ExecuteRequest("GET", s.basePath()+"/logviewers/"+logViewer.Id)
	s.Require().Equal(http.StatusOK, response.Code)
	s.Require().NoError(controllertest.GetResponseBody(response, &logViewer))
	s.Equal("tr-b", logViewer.Navigation.ActiveItem)
	s.Equal([]string{"tr-b", "tr-a", "tr-c", "tr-d"}, taskRunNames(logViewer.Navigation))
}

func (s *controllerTestSuite) Test_LogViewer_SelectUnknownTaskRun() {
	s.createDefaultTaskRuns()
	logViewer := s.createLogViewer()

	response := <-s.controller.ExecuteRequestWithParameters("PUT", s.basePath()+"/logviewers/"+logViewer.Id+"/activeitem", pipelineRunModels.ActiveItemSelection{TaskRun: "tr-x"})
	s.Equal(http.StatusNotFound, response.Code)

	response = <-s.controller.ExecuteRequestWithParameters("PUT", s.basePath()+"/logviewers/"+logViewer.Id+"/activeitem", pipelineRunModels.ActiveItemSelection{})
	s.Equal(http.StatusBadRequest, response.Code)
}

func (s *controllerTestSuite) Test_LogViewer_Logs() {
	s.createDefaultTaskRuns()
	logViewer := s.createLogViewer()

	response := <-s.controller.ExecuteRequest("GET", s.basePath()+"/logviewers/"+logViewer.Id+"/logs")
	s.Require().Equal(http.StatusOK, response.Code)
	body, _ := io.ReadAll(response.Body)
	s.Equal("fake logs", string(body))

	response = <-s.controller.ExecuteRequest("GET", s.basePath()+"/logviewers/"+logViewer.Id+"/logs?lines=abc")
	s.Equal(http.StatusBadRequest, response.Code)
}

func (s *controllerTestSuite) Test_LogViewer_LogsAsFile() {
	s.createDefaultTaskRuns()
	logViewer := s.createLogViewer()

	response := <-s.controller.ExecuteRequest("GET", s.basePath()+"/logviewers/"+logViewer.Id+"/logs?file=true")
	s.Require().Equal(http.StatusOK, response.Code)
	s.Contains(response.Header().Get("Content-Disposition"), "attachment")
}

func (s *controllerTestSuite) Test_LogViewer_LogsFallbackToPipelineRunMessage() {
	s.createPipelineRun("PipelineRun failed to start: invalid spec")
	logViewer := s.createLogViewer()

	response := <-s.controller.ExecuteRequest("GET", s.basePath()+"/logviewers/"+logViewer.Id+"/logs")
	s.Require().Equal(http.StatusOK, response.Code)
	body, _ := io.ReadAll(response.Body)
	s.Equal("PipelineRun failed to start: invalid spec", string(body))
}

func (s *controllerTestSuite) Test_LogViewer_LogsNoLogsFound() {
	s.createPipelineRun("")
	logViewer := s.createLogViewer()

	response := <-s.controller.ExecuteRequest("GET", s.basePath()+"/logviewers/"+logViewer.Id+"/logs")
	s.Require().Equal(http.StatusOK, response.Code)
	body, _ := io.ReadAll(response.Body)
	s.Equal(pipelineruns.NoLogsMessage, string(body))
}

func (s *controllerTestSuite) Test_LogViewer_LogsSelectionGone() {
	s.createDefaultTaskRuns()
	logViewer := s.createLogViewer()
	response := <-s.controller.ExecuteRequestWithParameters("PUT", s.basePath()+"/logviewers/"+logViewer.Id+"/activeitem", pipelineRunModels.ActiveItemSelection{TaskRun: "tr-a"})
	s.Require().Equal(http.StatusOK, response.Code)

	s.Require().NoError(s.tektonClient.TektonV1().TaskRuns(namespace).Delete(s.T().Context(), "tr-a", metav1.DeleteOptions{}))
	response = <-s.controller.ExecuteRequest("GET", s.basePath()+"/logviewers/"+logViewer.Id)
	s.Require().Equal(http.StatusOK, response.Code)
	s.Require().NoError(controllertest.GetResponseBody(response, &logViewer))
	s.Equal("tr-a", logViewer.Navigation.ActiveItem)

	response = <-s.controller.ExecuteRequest("GET", s.basePath()+"/logviewers/"+logViewer.Id+"/logs")
	s.Equal(http.StatusNotFound, response.Code)
}

func (s *controllerTestSuite) Test_LogViewer_Delete() {
	s.createDefaultTaskRuns()
	logViewer := s.createLogViewer()

	response := <-s.controller.ExecuteRequest("DELETE", s.basePath()+"/logviewers/"+logViewer.Id)
	s.Equal(http.StatusNoContent, response.Code)
	s.Equal(0, s.store.Len())

	response = <-s.controller.ExecuteRequest("GET", s.basePath()+"/logviewers/"+logViewer.Id)
	s.Equal(http.StatusNotFound, response.Code)
}

func (s *controllerTestSuite) Test_LogViewer_OtherPipelineRun() {
	s.createDefaultTaskRuns()
	logViewer := s.createLogViewer()

	response := <-s.controller.ExecuteRequest("GET", fmt.Sprintf("/api/v1/namespaces/%s/pipelineruns/%s/logviewers/%s", namespace, "other-pr", logViewer.Id))
	s.Equal(http.StatusNotFound, response.Code)
}

func (s *controllerTestSuite) Test_LogViewer_OnlyVisibleToOwner() {
	s.createPipelineRun("PipelineRun failed to start: invalid spec")
	logViewer := s.createLogViewer()
	otherUser := controllertest.NewTestUtils(kubefake.NewSimpleClientset(), tektonclientfake.NewSimpleClientset(), pipelineruns.NewPipelineRunController(s.store)).
		WithBearerToken("other-user-token")
	viewerPath := s.basePath() + "/logviewers/" + logViewer.Id

	response := <-otherUser.ExecuteRequest("GET", viewerPath+"/logs")
	s.Equal(http.StatusNotFound, response.Code)
	response = <-otherUser.ExecuteRequestWithParameters("PUT", viewerPath+"/activeitem", pipelineRunModels.ActiveItemSelection{TaskRun: "tr-a"})
	s.Equal(http.StatusNotFound, response.Code)
	response = <-otherUser.ExecuteRequest("DELETE", viewerPath)
	s.Equal(http.StatusNotFound, response.Code)
	s.Equal(1, s.store.Len())

	response = <-s.controller.ExecuteRequest("GET", viewerPath+"/logs")
	s.Require().Equal(http.StatusOK, response.Code)
	body, _ := io.ReadAll(response.Body)
	s.Equal("PipelineRun failed to start: invalid spec", string(body))
}
