package console

import (
	"log"
	"time"

	"github.com/watchfire-io/autodeploy/internal/models"
)

// Line is one log entry a phase writes.
type Line struct {
	Level   models.LogLevel
	Message string
}

// Transition is the status a phase moves the agent into.
type Transition struct {
	State    models.AgentState
	Task     string
	Progress int
}

// Phase is one pipeline step: an optional status transition, then its log
// lines, then a wait of Delay time units before the next phase starts.
type Phase struct {
	Name       string
	Transition *Transition
	Logs       []Line
	Delay      int
}

// Pipeline is a fixed, strictly sequential list of phases.
type Pipeline struct {
	Name   string
	Phases []Phase
}

// DeployURL is where the simulated deployment ends up.
const DeployURL = "https://autodeploy-agent.vercel.app"

const analyzeDoneMessage = "Repository analysis complete. Detected React/Vite project."

// DeployPipeline is run by any command containing "deploy".
var DeployPipeline = Pipeline{
	Name: "deploy",
	Phases: []Phase{
		{
			Name:       "start",
			Transition: &Transition{models.AgentStateAnalyzing, "Analyzing repository structure...", 10},
			Logs:       []Line{{models.LogLevelInfo, "Initiating deployment sequence..."}},
		},
		{Name: "analyze-settle", Delay: 1500},
		{
			Name: "analyze-done",
			Logs: []Line{{models.LogLevelSuccess, analyzeDoneMessage}},
		},
		{
			Name:       "build",
			Transition: &Transition{models.AgentStateBuilding, "Running build scripts...", 40},
			Logs:       []Line{{models.LogLevelInfo, "Executing: npm run build"}},
		},
		{Name: "build-settle", Delay: 2000},
		{
			Name: "build-done",
			Logs: []Line{{models.LogLevelSuccess, "Build successful. Output directory: /dist"}},
		},
		{
			Name:       "deploy",
			Transition: &Transition{models.AgentStateDeploying, "Uploading assets to edge...", 75},
			Logs:       []Line{{models.LogLevelInfo, "Optimizing assets for edge distribution..."}},
		},
		{
			Name:  "deploy-settle",
			Logs:  []Line{{models.LogLevelInfo, "Verifying integrity..."}},
			Delay: 1500,
		},
		{
			Name:       "finish",
			Transition: &Transition{models.AgentStateIdle, "Deployment Complete", 100},
			Logs:       []Line{{models.LogLevelSuccess, "Deployment successful! URL: " + DeployURL}},
		},
	},
}

// AnalyzePipeline is run by the analyze command.
var AnalyzePipeline = Pipeline{
	Name: "analyze",
	Phases: []Phase{
		{
			Name:       "start",
			Transition: &Transition{models.AgentStateAnalyzing, "Analyzing repository structure...", 10},
			Logs:       []Line{{models.LogLevelInfo, "Starting repository analysis..."}},
		},
		{Name: "analyze-settle", Delay: 1500},
		{
			Name:       "finish",
			Transition: &Transition{models.AgentStateIdle, "Analysis Complete", 100},
			Logs:       []Line{{models.LogLevelSuccess, analyzeDoneMessage}},
		},
	},
}

// Duration is the total simulated wait of the pipeline in time units.
func (p Pipeline) Duration() int {
	total := 0
	for _, ph := range p.Phases {
		total += ph.Delay
	}
	return total
}

// run drives one execution of a pipeline. It suspends on the session clock
// after every phase with a delay and holds no locks: the busy gate in Submit
// keeps runs from overlapping.
type run struct {
	s       *Session
	p       Pipeline
	unit    time.Duration
	started time.Time
}

func (r *run) step(i int) {
	for ; i < len(r.p.Phases); i++ {
		ph := r.p.Phases[i]
		r.s.emit(Event{Kind: EventPhase, Pipeline: r.p.Name, Phase: ph.Name, Index: i})
		if t := ph.Transition; t != nil {
			r.s.transition(t.State, t.Task, t.Progress)
		}
		for _, line := range ph.Logs {
			r.s.append(line.Message, line.Level)
		}
		if ph.Delay > 0 {
			next := i + 1
			r.s.clock.AfterFunc(time.Duration(ph.Delay)*r.unit, func() { r.step(next) })
			return
		}
	}
	log.Printf("[agent] %s pipeline finished in %s", r.p.Name, r.s.clock.Now().Sub(r.started))
}
