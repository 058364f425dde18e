// file: services/scoreboard_service.go
package services

import (
	"context"
	"encoding/json"
	"log"
	"sort"
	"time"

	"YukthiCTF/models"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const publicStandingsCacheKey = "scoreboard:public"

// Standing 排行榜上的一行
type Standing struct {
	Rank          uint       `json:"rank"`
	TeamID        uint32     `json:"team_id"`
	TeamName      string     `json:"team_name"`
	Score         int        `json:"score"`
	LastScoreTime *time.Time `json:"last_score_time"`
}

// SolverEntry 某道题的解出记录
type SolverEntry struct {
	TeamID   uint32    `json:"team_id"`
	TeamName string    `json:"team_name"`
	SolvedAt time.Time `json:"solved_at"`
}

// ScoreEvent 队伍得分时间线上的一条（Solve 或 Award）
type ScoreEvent struct {
	ChallengeID *uint32   `json:"challenge_id"` // Award 为 null
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Value       int       `json:"value"`
	Time        time.Time `json:"time"`
}

// ScoreboardService 从流水和 Award 重算榜单。只读，不阻塞提交链路；
// 给定同一封榜时间，重算结果是确定的。
// rdb 可以为 nil，此时退化为每次直查数据库。
type ScoreboardService struct {
	db  *gorm.DB
	rdb *redis.Client

	settings *SettingsService
}

func NewScoreboardService(db *gorm.DB, rdb *redis.Client, settings *SettingsService) *ScoreboardService {
	return &ScoreboardService{db: db, rdb: rdb, settings: settings}
}

// Standings 计算排行榜。封榜后 freeze 时刻及之后的 Solve/Award
// 对所有队伍隐藏，唯独 requesterTeamID 自己的队伍看实时进度；
// 公共视角（requesterTeamID=0）的结果走 Redis 短缓存。
// 排序：总分降序，同分按最后得分时间早者在前。
func (s *ScoreboardService) Standings(requesterTeamID uint32) ([]Standing, error) {
	cfg := s.settings.Current()

	useCache := requesterTeamID == 0 && s.rdb != nil
	if useCache {
		if val, err := s.rdb.Get(context.Background(), publicStandingsCacheKey).Result(); err == nil {
			var cached []Standing
			if json.Unmarshal([]byte(val), &cached) == nil {
				return cached, nil
			}
		}
	}

	teams, err := s.scoringTeams()
	if err != nil {
		return nil, err
	}

	var solves []models.Solve
	if err := s.db.Find(&solves).Error; err != nil {
		return nil, err
	}
	var awards []models.Award
	if err := s.db.Find(&awards).Error; err != nil {
		return nil, err
	}

	type agg struct {
		score int
		last  time.Time
	}
	totals := make(map[uint32]*agg)
	count := func(teamID uint32, value int, at time.Time) {
		if _, ok := teams[teamID]; !ok {
			return // 封禁/隐藏队伍不计分
		}
		if s.frozenOut(cfg, at, teamID, requesterTeamID) {
			return
		}
		a := totals[teamID]
		if a == nil {
			a = &agg{}
			totals[teamID] = a
		}
		a.score += value
		if at.After(a.last) {
			a.last = at
		}
	}
	for _, solve := range solves {
		count(solve.TeamID, int(solve.Value), solve.SolvedAt)
	}
	for _, award := range awards {
		count(award.TeamID, award.Value, award.AwardedAt)
	}

	standings := make([]Standing, 0, len(totals))
	for teamID, a := range totals {
		last := a.last
		standings = append(standings, Standing{
			TeamID:        teamID,
			TeamName:      teams[teamID],
			Score:         a.score,
			LastScoreTime: &last,
		})
	}
	sort.Slice(standings, func(i, j int) bool {
		if standings[i].Score != standings[j].Score {
			return standings[i].Score > standings[j].Score
		}
		if !standings[i].LastScoreTime.Equal(*standings[j].LastScoreTime) {
			return standings[i].LastScoreTime.Before(*standings[j].LastScoreTime)
		}
		return standings[i].TeamID < standings[j].TeamID
	})
	for i := range standings {
		standings[i].Rank = uint(i + 1)
	}

	if useCache {
		if data, err := json.Marshal(standings); err == nil {
			// 短 TTL 保证榜单准实时
			s.rdb.Set(context.Background(), publicStandingsCacheKey, data, 15*time.Second)
		}
	}
	return standings, nil
}

// SolveCounts 各题解出队伍数（只数计分队伍）。
// 隐藏分数模式下返回 -1 哨兵值，只遮蔽展示，不动数据
func (s *ScoreboardService) SolveCounts() (map[uint32]int, error) {
	cfg := s.settings.Current()

	teams, err := s.scoringTeams()
	if err != nil {
		return nil, err
	}
	var solves []models.Solve
	if err := s.db.Find(&solves).Error; err != nil {
		return nil, err
	}

	counts := make(map[uint32]int)
	for _, solve := range solves {
		if _, ok := teams[solve.TeamID]; !ok {
			continue
		}
		counts[solve.ChallengeID]++
	}
	if cfg.HideScores {
		for id := range counts {
			counts[id] = -1
		}
	}
	return counts, nil
}

// Solvers 某道题的解出队伍列表，按解出时间升序。
// 隐藏分数模式下整个列表不返回
func (s *ScoreboardService) Solvers(challengeID uint32) ([]SolverEntry, error) {
	cfg := s.settings.Current()
	if cfg.HideScores {
		return []SolverEntry{}, nil
	}

	teams, err := s.scoringTeams()
	if err != nil {
		return nil, err
	}
	var solves []models.Solve
	if err := s.db.Where("challenge_id = ?", challengeID).Order("solved_at asc").Find(&solves).Error; err != nil {
		return nil, err
	}

	entries := make([]SolverEntry, 0, len(solves))
	for _, solve := range solves {
		name, ok := teams[solve.TeamID]
		if !ok {
			continue
		}
		entries = append(entries, SolverEntry{TeamID: solve.TeamID, TeamName: name, SolvedAt: solve.SolvedAt})
	}
	return entries, nil
}

// TeamSolves 某队伍的得分时间线（Solve + Award 合并，按时间升序）。
// 封榜过滤对本队视角不生效
func (s *ScoreboardService) TeamSolves(teamID, requesterTeamID uint32) ([]ScoreEvent, error) {
	cfg := s.settings.Current()

	var solves []models.Solve
	if err := s.db.Where("team_id = ?", teamID).Find(&solves).Error; err != nil {
		return nil, err
	}
	var awards []models.Award
	if err := s.db.Where("team_id = ?", teamID).Find(&awards).Error; err != nil {
		return nil, err
	}

	// 题目名称/分类一次取齐
	chalIDs := make([]uint32, 0, len(solves))
	for _, solve := range solves {
		chalIDs = append(chalIDs, solve.ChallengeID)
	}
	chalInfo := make(map[uint32]models.Challenge)
	if len(chalIDs) > 0 {
		var chals []models.Challenge
		if err := s.db.Where("id IN ?", chalIDs).Find(&chals).Error; err != nil {
			return nil, err
		}
		for _, ch := range chals {
			chalInfo[ch.ID] = ch
		}
	}

	events := make([]ScoreEvent, 0, len(solves)+len(awards))
	for _, solve := range solves {
		if s.frozenOut(cfg, solve.SolvedAt, teamID, requesterTeamID) {
			continue
		}
		ch := chalInfo[solve.ChallengeID]
		id := solve.ChallengeID
		events = append(events, ScoreEvent{
			ChallengeID: &id,
			Name:        ch.ChallengeName,
			Category:    ch.Category,
			Value:       int(solve.Value),
			Time:        solve.SolvedAt,
		})
	}
	for _, award := range awards {
		if s.frozenOut(cfg, award.AwardedAt, teamID, requesterTeamID) {
			continue
		}
		category := award.Category
		if category == "" {
			category = "Award"
		}
		events = append(events, ScoreEvent{
			Name:     award.Name,
			Category: category,
			Value:    award.Value,
			Time:     award.AwardedAt,
		})
	}
	sort.Slice(events, func(i, j int) bool { return events[i].Time.Before(events[j].Time) })
	return events, nil
}

// InvalidateCache 新的 Solve/Award 落库后清掉榜单缓存
func (s *ScoreboardService) InvalidateCache() {
	if s == nil || s.rdb == nil {
		return
	}
	keys, err := s.rdb.Keys(context.Background(), "scoreboard:*").Result()
	if err == nil && len(keys) > 0 {
		if err := s.rdb.Del(context.Background(), keys...).Err(); err != nil {
			log.Printf("Failed to clear scoreboard cache: %v", err)
		}
	}
}

// frozenOut 封榜判定：freeze 时刻及之后的记录对非本队视角隐藏
func (s *ScoreboardService) frozenOut(cfg *Settings, at time.Time, teamID, requesterTeamID uint32) bool {
	if cfg.FreezeTime == nil {
		return false
	}
	if teamID == requesterTeamID {
		return false
	}
	return !at.Before(*cfg.FreezeTime)
}

// scoringTeams 计分队伍集合：封禁与隐藏状态不参与任何计分输出
func (s *ScoreboardService) scoringTeams() (map[uint32]string, error) {
	var teams []models.Team
	if err := s.db.Where("team_status = ?", models.TeamStatusActive).Find(&teams).Error; err != nil {
		return nil, err
	}
	m := make(map[uint32]string, len(teams))
	for _, t := range teams {
		m[t.ID] = t.TeamName
	}
	return m, nil
}
