package actionslog

import (
	"sort"
	"strconv"
	"strings"
)

// WorkflowNode is the root of the renderable build log tree.
type WorkflowNode struct {
	Name string
	Jobs []JobNode
}

// JobNode groups the steps of one job.
type JobNode struct {
	Name  string
	Steps []StepNode
}

// StepNode holds the log lines of one step.
type StepNode struct {
	Name  string
	Lines []LogLine
}

// ErrorCount returns how many lines carry an ::error:: annotation.
func (s *StepNode) ErrorCount() int {
	count := 0
	for i := range s.Lines {
		if cmd := s.Lines[i].Command; cmd != nil && cmd.Kind == CommandError {
			count++
		}
	}
	return count
}

// BuildTree arranges a parsed log archive into a workflow → job → step tree.
//
// Run-log archives contain per-job directories of step files
// ("Job Name/3_Step name.txt") plus combined per-job files at the root
// ("1_Job Name.txt"). Step files win when both exist; a job with only a
// combined file gets a single synthetic "log" step. Numeric filename prefixes
// determine ordering and are stripped from display names.
func BuildTree(parsed *ParsedLog, workflowName string) []WorkflowNode {
	type stepEntry struct {
		order int
		step  StepNode
	}
	steps := make(map[string][]stepEntry)
	combined := make(map[string]JobLog)
	var jobOrder []string

	seen := func(job string) {
		for _, j := range jobOrder {
			if j == job {
				return
			}
		}
		jobOrder = append(jobOrder, job)
	}

	for _, job := range parsed.Jobs {
		if dir, file, found := strings.Cut(job.Name, "/"); found {
			order, name := splitOrderPrefix(strings.TrimSuffix(file, ".txt"))
			jobName := stripOrderPrefix(dir)
			seen(jobName)
			steps[jobName] = append(steps[jobName], stepEntry{
				order: order,
				step:  StepNode{Name: name, Lines: job.Lines},
			})
		} else {
			jobName := stripOrderPrefix(strings.TrimSuffix(job.Name, ".txt"))
			seen(jobName)
			combined[jobName] = job
		}
	}

	workflow := WorkflowNode{Name: workflowName}
	for _, jobName := range jobOrder {
		node := JobNode{Name: jobName}
		if entries := steps[jobName]; len(entries) > 0 {
			sort.SliceStable(entries, func(i, j int) bool {
				return entries[i].order < entries[j].order
			})
			for _, e := range entries {
				node.Steps = append(node.Steps, e.step)
			}
		} else if job, ok := combined[jobName]; ok {
			node.Steps = append(node.Steps, StepNode{Name: "log", Lines: job.Lines})
		}
		workflow.Jobs = append(workflow.Jobs, node)
	}
	if len(workflow.Jobs) == 0 {
		return nil
	}
	return []WorkflowNode{workflow}
}

// splitOrderPrefix splits "3_Run tests" into (3, "Run tests").
func splitOrderPrefix(name string) (int, string) {
	digits, rest, found := strings.Cut(name, "_")
	if !found {
		return 0, name
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, name
	}
	return n, rest
}

func stripOrderPrefix(name string) string {
	_, stripped := splitOrderPrefix(name)
	return stripped
}
