// file: services/team_lock.go
package services

import (
	"sync"
)

// teamLocker 按队伍ID串行化提交。同一队伍的两次并发提交若不互斥，
// 可能同时读到"未解出"并各写一条 Solve，或同时通过频率检查。
// 不同队伍之间完全并行。Solve 表的唯一索引是多进程部署下的最终兜底。
type teamLocker struct {
	mu    sync.Mutex
	locks map[uint32]*sync.Mutex
}

func newTeamLocker() *teamLocker {
	return &teamLocker{locks: make(map[uint32]*sync.Mutex)}
}

// Lock 锁住指定队伍，返回解锁函数
func (l *teamLocker) Lock(teamID uint32) func() {
	l.mu.Lock()
	m, ok := l.locks[teamID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[teamID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
