package reorder

// Move 把 list[from] 移到下标 to，原地移动并返回该切片。
// 下标越界或不动时原样返回
func Move[T any](list []T, from, to int) []T {
	n := len(list)
	if from < 0 || from >= n || to < 0 || to >= n || from == to {
		return list
	}
	item := list[from]
	if from < to {
		copy(list[from:to], list[from+1:to+1])
	} else {
		copy(list[to+1:from+1], list[to:from])
	}
	list[to] = item
	return list
}

// EdgeVelocity 拖拽到容器边缘时的自动滚动速度。
// distance 是指针到边缘的距离，zone 是触发带宽度，maxSpeed 是贴边满速。
// 速度与陷入边缘带的深度成正比，带外为 0
func EdgeVelocity(distance, zone, maxSpeed float64) float64 {
	if zone <= 0 || distance >= zone {
		return 0
	}
	if distance < 0 {
		distance = 0
	}
	return maxSpeed * (1 - distance/zone)
}
