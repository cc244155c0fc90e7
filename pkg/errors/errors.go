package errors

import "errors"

// ErrOptimisticLock 乐观锁冲突：记录已被其他操作修改
var ErrOptimisticLock = errors.New("record was modified by another request, reload and retry")

// ErrTxConflict 串行化事务多次重试后仍冲突
var ErrTxConflict = errors.New("concurrent timetable write conflict, please retry")
