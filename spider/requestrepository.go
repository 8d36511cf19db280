package spider

import "sync"

type ReqHistoryRepository interface {
	// 将一个或多个请求加入已访问列表
	AddVisited(reqs ...*Request)
	// 将一个请求从已访问列表中删除
	DeleteVisited(req *Request)
	/*
	   输入一个请求，输出一个布尔值，true表示首次失败允许重试，false表示已失败过

	   失败的请求会先从已访问列表中移除，这样重试时不会被当作重复访问
	*/
	AddFailures(req *Request) bool
	// 将一个请求从失败列表中删除
	DeleteFailures(req *Request)
	// 判断请求是否已经访问过
	HasVisited(req *Request) bool
	// 若未访问过则标记为已访问并返回true，并发调用时只有一个调用方会得到true
	TryVisit(req *Request) bool
}

type reqHistory struct {
	Visited     map[string]bool
	VisitedLock sync.Mutex

	failures    map[string]*Request // 失败请求id -> 失败请求
	failureLock sync.Mutex
}

func NewReqHistoryRepository() ReqHistoryRepository {
	r := &reqHistory{}
	r.Visited = make(map[string]bool, 100)
	r.failures = make(map[string]*Request, 100)
	return r
}

func (r *reqHistory) HasVisited(req *Request) bool {
	r.VisitedLock.Lock()
	defer r.VisitedLock.Unlock()

	return r.Visited[req.Unique()]
}

func (r *reqHistory) TryVisit(req *Request) bool {
	r.VisitedLock.Lock()
	defer r.VisitedLock.Unlock()

	unique := req.Unique()
	if r.Visited[unique] {
		return false
	}
	r.Visited[unique] = true
	return true
}

func (r *reqHistory) AddVisited(reqs ...*Request) {
	r.VisitedLock.Lock()
	defer r.VisitedLock.Unlock()

	for _, req := range reqs {
		r.Visited[req.Unique()] = true
	}
}

func (r *reqHistory) DeleteVisited(req *Request) {
	r.VisitedLock.Lock()
	defer r.VisitedLock.Unlock()
	delete(r.Visited, req.Unique())
}

func (r *reqHistory) AddFailures(req *Request) bool {
	r.DeleteVisited(req)

	r.failureLock.Lock()
	defer r.failureLock.Unlock()

	if _, ok := r.failures[req.Unique()]; ok {
		return false
	}
	r.failures[req.Unique()] = req
	return true
}

func (r *reqHistory) DeleteFailures(req *Request) {
	r.failureLock.Lock()
	defer r.failureLock.Unlock()

	delete(r.failures, req.Unique())
}
