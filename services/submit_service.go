// file: services/submit_service.go
package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"YukthiCTF/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Outcome 提交判定结果的内部分类
type Outcome string

const (
	OutcomeNotLoggedIn    Outcome = "not_logged_in"
	OutcomeNotEligible    Outcome = "not_eligible"
	OutcomeRateLimited    Outcome = "rate_limited"
	OutcomeAlreadySolved  Outcome = "already_solved"
	OutcomeQuotaExhausted Outcome = "quota_exhausted"
	OutcomeCorrect        Outcome = "correct"
	OutcomeIncorrect      Outcome = "incorrect"
)

// 对外状态码，沿用经典取值：-1 未登录，0 错误/无配额，1 正确，2 已解出，3 提交过快
func (o Outcome) StatusCode() int {
	switch o {
	case OutcomeNotLoggedIn, OutcomeNotEligible:
		return -1
	case OutcomeCorrect:
		return 1
	case OutcomeAlreadySolved:
		return 2
	case OutcomeRateLimited:
		return 3
	default:
		return 0
	}
}

type SubmitResult struct {
	Outcome Outcome
	Message string
}

// Identity 账号系统（外部协作方）解析出的提交者身份
type Identity struct {
	UserID   uint32
	TeamID   uint32
	Username string
	Admin    bool
	Verified bool
	IP       string
}

// SubmitService 提交网关：一条提交依次过窗口、频率、判重、配额、判定、落账。
// 同一队伍的提交从检查到落账全程持有该队伍的锁；
// 跨队伍提交互不阻塞。
type SubmitService struct {
	store      *AttemptStore
	settings   *SettingsService
	scoreboard *ScoreboardService
	locks      *teamLocker

	// 测试注入时间
	now func() time.Time
}

func NewSubmitService(db *gorm.DB, settings *SettingsService, scoreboard *ScoreboardService) *SubmitService {
	return &SubmitService{
		store:      NewAttemptStore(db),
		settings:   settings,
		scoreboard: scoreboard,
		locks:      newTeamLocker(),
		now:        time.Now,
	}
}

// Submit 处理一次 Flag 提交。返回 error 的情况只有配置错误和
// 重试耗尽的存储故障，正常业务结果都在 SubmitResult 里。
//
// 检查顺序是有意设计的优先级：频率和判重先于配额与判定，
// 刷屏和重放不应消耗配额，也不应触发判定造成时间侧信道。
// 每次提交至多写一条流水，且只在比赛进行中写。
func (s *SubmitService) Submit(id Identity, challengeID uint32, rawFlag string) (SubmitResult, error) {
	cfg := s.settings.Current()
	now := s.now()

	if id.TeamID == 0 {
		return SubmitResult{OutcomeNotLoggedIn, "必须先登录并加入队伍才能提交"}, nil
	}
	if !id.Verified && !id.Admin {
		return SubmitResult{OutcomeNotEligible, "请先完成邮箱验证"}, nil
	}

	window := cfg.WindowState(now)
	if !id.Admin {
		if window == WindowNotStarted {
			return SubmitResult{OutcomeNotEligible, fmt.Sprintf("%s 尚未开始", cfg.GameName)}, nil
		}
		if window == WindowEnded && !cfg.ViewAfterEnd {
			return SubmitResult{OutcomeNotEligible, fmt.Sprintf("%s 已结束", cfg.GameName)}, nil
		}
	}
	// 得分与落账只认 Live，管理员也不例外
	live := window == WindowLive

	flag := strings.TrimSpace(rawFlag)

	unlock := s.locks.Lock(id.TeamID)
	defer unlock()

	// 频率限制：统计该队伍最近 60 秒的全部提交
	recent, err := s.store.CountAttemptsSince(id.TeamID, now.Add(-time.Minute))
	if err != nil {
		return SubmitResult{}, err
	}
	if recent >= int64(cfg.MaxKPM) {
		// 超速提交跳过判定，但比赛进行中仍按错误落账消耗配额
		if live {
			if err := s.store.RecordWrong(s.newAttempt(id, challengeID, flag, models.AttemptResultWrong, now)); err != nil {
				return SubmitResult{}, err
			}
		}
		log.Printf("[flags] %s submitted %q with kpm %d [TOO FAST]", id.Username, flag, recent)
		return SubmitResult{OutcomeRateLimited, "提交太快了，请慢一点"}, nil
	}

	solved, err := s.store.HasSolve(id.TeamID, challengeID)
	if err != nil {
		return SubmitResult{}, err
	}
	if solved {
		log.Printf("[flags] %s submitted %q [ALREADY SOLVED]", id.Username, flag)
		return SubmitResult{OutcomeAlreadySolved, "你所在的队伍已解出此题"}, nil
	}

	chal, err := s.store.LoadChallengeWithKeys(challengeID)
	if err != nil {
		return SubmitResult{}, err
	}
	if chal.State == models.ChallengeStateHidden && !id.Admin {
		return SubmitResult{}, ErrChallengeNotFound
	}

	// 配额：fails 在判定前读取。第 M 次错误提交仍会被判定
	// （读取时 fails == M-1），第 M+1 次才在这里被拒绝
	fails, err := s.store.CountWrong(id.TeamID, challengeID)
	if err != nil {
		return SubmitResult{}, err
	}
	if chal.MaxAttempts > 0 && fails >= int64(chal.MaxAttempts) {
		return SubmitResult{OutcomeQuotaExhausted, "剩余尝试次数为 0"}, nil
	}

	correct, err := GradeSubmission(chal.Keys, flag)
	if err != nil {
		// 匹配策略缺失或正则无效属于配置错误，向上抛 5xx
		return SubmitResult{}, err
	}

	if correct {
		if live {
			solve := &models.Solve{
				ChallengeID: challengeID,
				TeamID:      id.TeamID,
				UserID:      id.UserID,
				Value:       chal.Value,
				SolvedAt:    now,
			}
			err := s.store.RecordSolve(solve, s.newAttempt(id, challengeID, flag, models.AttemptResultCorrect, now))
			if errors.Is(err, ErrAlreadySolved) {
				return SubmitResult{OutcomeAlreadySolved, "你所在的队伍已解出此题"}, nil
			}
			if err != nil {
				return SubmitResult{}, err
			}
			s.scoreboard.InvalidateCache()
		}
		log.Printf("[flags] %s solved challenge %d [CORRECT]", id.Username, challengeID)
		return SubmitResult{OutcomeCorrect, "Flag 正确！"}, nil
	}

	if live {
		if err := s.store.RecordWrong(s.newAttempt(id, challengeID, flag, models.AttemptResultWrong, now)); err != nil {
			return SubmitResult{}, err
		}
	}
	log.Printf("[flags] %s submitted %q for challenge %d [WRONG]", id.Username, flag, challengeID)

	if chal.MaxAttempts > 0 {
		// fails 是本次落账前读到的值，剩余次数要把本次也算进去
		remaining := int64(chal.MaxAttempts) - fails - 1
		return SubmitResult{OutcomeIncorrect, fmt.Sprintf("Flag 错误，剩余 %d 次尝试机会", remaining)}, nil
	}
	return SubmitResult{OutcomeIncorrect, "Flag 错误"}, nil
}

func (s *SubmitService) newAttempt(id Identity, challengeID uint32, flag string, result models.AttemptResult, now time.Time) *models.Attempt {
	nonce := uuid.NewString()
	return &models.Attempt{
		ChallengeID:   challengeID,
		TeamID:        id.TeamID,
		UserID:        id.UserID,
		SubmittedFlag: flag,
		Result:        result,
		SubmittedAt:   now,
		IPAddress:     id.IP,
		Nonce:         &nonce,
	}
}
