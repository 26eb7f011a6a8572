package auth

// IsOwner 判断操作者是否为资源的所有者。
// 匿名身份（actorID == 0）永远不是所有者
func IsOwner(actorID, ownerID int) bool {
	if actorID == 0 {
		return false
	}
	return actorID == ownerID
}
