package services

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/schema"

	"PlanifyGo/config"
	"PlanifyGo/models"
)

// SubtaskEstimate AI 拆解出的子任务建议
type SubtaskEstimate struct {
	Title     string   `json:"title"`
	EstTime   int      `json:"estTime"`
	Sequence  int      `json:"sequence,omitempty"`
	DependsOn []string `json:"dependsOn,omitempty"`
}

// EstimateResult AI 估算结果。EstTime、Urgency、Importance 三项缺一不可
type EstimateResult struct {
	EstTime    int               `json:"EstTime"`
	Urgency    int               `json:"Urgency"`
	Importance int               `json:"Importance"`
	Energy     string            `json:"Energy"`
	Context    string            `json:"Context"`
	StartDate  string            `json:"StartDate,omitempty"`
	Subtasks   []SubtaskEstimate `json:"subtasks,omitempty"`
}

type EstimateService struct {
	client *DeepseekClient
}

func NewEstimateService(client *DeepseekClient) *EstimateService {
	return &EstimateService{client: client}
}

var jsonObjectRe = regexp.MustCompile(`\{[\s\S]*\}`)

const estimatePromptTemplate = `Analyze the following task and provide planning estimates.
Task Title: "%s"
Task Description: "%s"

Provide your best estimates for the following properties in a JSON object:
- EstTime: Total estimated time in minutes (integer).
- Urgency: A score from 1 to 10.
- Importance: A score from 1 to 10.
- Energy: 'low', 'medium', or 'high'.
- Context: A single, relevant keyword (e.g., 'work', 'home', 'computer').
- StartDate: (Optional) YYYY-MM-DD format if a specific start date is mentioned, otherwise use "None".

CRITICAL: If the total EstTime is greater than 60 minutes, you MUST break the task down into a series of smaller, actionable subtasks.
- The 'subtasks' property should be an array of objects.
- Each object in the 'subtasks' array MUST have 'title' (string) and 'estTime' (integer) properties.
- For subtasks that MUST be completed in a specific order, add a 'sequence' number (integer, starting from 1).
- For subtasks that depend on others, add a 'dependsOn' property, which is an array of strings containing the titles of the subtasks it depends on. Ensure dependencies are logical and not circular.
- The sum of the subtask estTimes should be reasonably close to the total EstTime.
- If the task is small (<= 60 minutes), the 'subtasks' array should be empty or omitted.

Respond ONLY with a valid, raw JSON object. Do not include any other text, explanations, or markdown formatting.

Example for a LARGE task with dependencies:
{
  "EstTime": 180,
  "Urgency": 8,
  "Importance": 9,
  "Energy": "high",
  "Context": "project-launch",
  "StartDate": "None",
  "subtasks": [
    { "title": "Finalize feature A", "estTime": 60, "sequence": 1 },
    { "title": "Test feature A", "estTime": 30, "sequence": 2, "dependsOn": ["Finalize feature A"] },
    { "title": "Develop feature B", "estTime": 45, "sequence": 3 },
    { "title": "Integrate A and B", "estTime": 45, "sequence": 4, "dependsOn": ["Test feature A", "Develop feature B"] }
  ]
}

Example for a SMALL task (<=60 min):
{
  "EstTime": 45,
  "Urgency": 7,
  "Importance": 6,
  "Energy": "medium",
  "Context": "email",
  "StartDate": "None"
}`

// Estimate 请求 AI 对单个任务给出规划估算。
// 响应必须是单个 JSON 对象；缺少必填字段整个请求算失败，
// 悬空的 dependsOn 引用只丢弃引用本身，不影响其余结果
func (s *EstimateService) Estimate(ctx context.Context, task *models.Task) (*EstimateResult, error) {
	prompt := fmt.Sprintf(estimatePromptTemplate, task.Title, task.Description())

	messages := []llms.MessageContent{
		{
			Role:  schema.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextPart(prompt)},
		},
	}

	response, err := s.client.DsChat.GenerateContent(ctx, messages, llms.WithTemperature(0.2))
	if err != nil {
		return nil, fmt.Errorf("估算请求失败: %w", err)
	}
	if len(response.Choices) == 0 {
		return nil, fmt.Errorf("未生成有效内容")
	}

	result, err := parseEstimateResponse(response.Choices[0].Content)
	if err != nil {
		config.Logger.Errorw("解析估算响应失败",
			"error", err,
			"taskId", task.ID,
		)
		return nil, err
	}
	return result, nil
}

// parseEstimateResponse 从模型回复中提取并校验估算 JSON
func parseEstimateResponse(raw string) (*EstimateResult, error) {
	jsonText := jsonObjectRe.FindString(raw)
	if jsonText == "" {
		return nil, fmt.Errorf("响应中没有合法的 JSON 对象")
	}

	var result EstimateResult
	if err := json.Unmarshal([]byte(jsonText), &result); err != nil {
		return nil, fmt.Errorf("解析估算 JSON 失败: %w", err)
	}

	if result.EstTime <= 0 || result.Urgency <= 0 || result.Importance <= 0 {
		return nil, fmt.Errorf("估算结果缺少必填字段")
	}
	if result.Energy == "" {
		result.Energy = "medium"
	}
	if result.Context == "" {
		result.Context = "none"
	}

	result.Subtasks = sanitizeDependencies(result.Subtasks)
	return &result, nil
}

// sanitizeDependencies 丢弃指向未知兄弟标题的 dependsOn 引用
func sanitizeDependencies(subtasks []SubtaskEstimate) []SubtaskEstimate {
	if len(subtasks) == 0 {
		return subtasks
	}

	titles := make(map[string]bool, len(subtasks))
	for _, sub := range subtasks {
		titles[sub.Title] = true
	}

	for i, sub := range subtasks {
		kept := sub.DependsOn[:0]
		for _, dep := range sub.DependsOn {
			if titles[dep] {
				kept = append(kept, dep)
			} else if config.Logger != nil {
				config.Logger.Warnw("丢弃无效的子任务依赖",
					"subtask", sub.Title,
					"dependsOn", dep,
				)
			}
		}
		subtasks[i].DependsOn = kept
	}
	return subtasks
}
