// Package agent runs predefined and custom cloud-engineering tasks through
// the external model, with validated AWS credentials attached.
package agent

// Task is one predefined cloud-engineering task.
type Task struct {
	ID     string `json:"id"`
	Prompt string `json:"prompt"`
}

// PredefinedTasks lists the built-in tasks, in menu order.
var PredefinedTasks = []Task{
	{ID: "ec2_status", Prompt: "List all EC2 instances and their status"},
	{ID: "s3_buckets", Prompt: "List all S3 buckets and their creation dates"},
	{ID: "cloudwatch_alarms", Prompt: "Check for any CloudWatch alarms in ALARM state"},
	{ID: "iam_users", Prompt: "List all IAM users and their last activity"},
	{ID: "security_groups", Prompt: "Analyze security groups for potential vulnerabilities"},
	{ID: "cost_optimization", Prompt: "Identify resources that could be optimized for cost"},
	{ID: "lambda_functions", Prompt: "List all Lambda functions and their runtime"},
	{ID: "rds_instances", Prompt: "Check status of all RDS instances"},
	{ID: "vpc_analysis", Prompt: "Analyze VPC configuration and suggest improvements"},
	{ID: "ebs_volumes", Prompt: "Find unattached EBS volumes that could be removed"},
	{ID: "generate_diagram", Prompt: "Generate AWS architecture diagrams based on user description"},
}

// Lookup returns the predefined task with the given ID.
func Lookup(id string) (Task, bool) {
	for _, t := range PredefinedTasks {
		if t.ID == id {
			return t, true
		}
	}
	return Task{}, false
}
