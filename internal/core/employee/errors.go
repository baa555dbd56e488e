package employee

import "errors"

// ErrEmployeeNotFound はストアに該当する社員が存在しないことを表します。
// 不在は異常系ではなく通常の結果として扱い、トランスポート層で
// not-found 応答へ変換されます。
var ErrEmployeeNotFound = errors.New("employee: not found")
