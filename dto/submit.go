// file: dto/submit.go
package dto

import "strings"

type SubmitFlagReq struct {
	Flag string `json:"flag"`

	// 兼容旧客户端的大小写变体
	FlagCamel string `json:"Flag"`
	KeyAlias  string `json:"key"`
}

func (r *SubmitFlagReq) Normalize() {
	if r.Flag == "" && r.FlagCamel != "" {
		r.Flag = r.FlagCamel
	}
	if r.Flag == "" && r.KeyAlias != "" {
		r.Flag = r.KeyAlias
	}
	r.Flag = strings.TrimSpace(r.Flag)
}

// ========== 响应 DTO ==========

type ChallengeItemResp struct {
	ID            uint32 `json:"id"`
	ChallengeName string `json:"name"`
	Category      string `json:"category"`
	Value         uint   `json:"value"`
	MaxAttempts   uint   `json:"max_attempts"`
	Hint          string `json:"hint"`
	Description   string `json:"description"`
	Hidden        bool   `json:"hidden,omitempty"`
}

type SubmitFlagResp struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

type SolverResp struct {
	TeamID   uint32 `json:"team_id"`
	TeamName string `json:"team_name"`
	SolvedAt string `json:"solved_at"`
}

type StandingResp struct {
	Rank          uint    `json:"rank"`
	TeamID        uint32  `json:"team_id"`
	TeamName      string  `json:"team_name"`
	Score         int     `json:"score"`
	LastScoreTime *string `json:"last_score_time"`
}

type TeamSolveResp struct {
	ChallengeID   *uint32 `json:"challenge_id"` // Award 为 null
	Name          string  `json:"name"`
	Category      string  `json:"category"`
	Value         int     `json:"value"`
	Time          string  `json:"time"`
}
