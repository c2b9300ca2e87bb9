package imaging

// FrameDescriptor is the flattened view of one fetchable frame.
type FrameDescriptor struct {
	FrameID    string `json:"frameId"`
	SeriesID   string `json:"seriesId"`
	InstanceID string `json:"instanceId"`
}

// Enumerate flattens the metadata tree into frame descriptors.
//
// Iteration follows document order on every level, so the result is
// deterministic for a fixed document and fixes the processing order of the
// whole run. Missing levels contribute zero descriptors; frame references
// without an ID are skipped. limit > 0 truncates to the first limit
// descriptors, limit == 0 means unlimited.
func Enumerate(meta *ImageSetMetadata, limit int) []FrameDescriptor {
	var out []FrameDescriptor
	for _, series := range meta.Study.Series {
		for _, inst := range series.Instances {
			for _, frame := range inst.ImageFrames {
				if frame.ID == "" {
					continue
				}
				out = append(out, FrameDescriptor{
					FrameID:    frame.ID,
					SeriesID:   series.ID,
					InstanceID: inst.ID,
				})
				if limit > 0 && len(out) == limit {
					return out
				}
			}
		}
	}
	return out
}
