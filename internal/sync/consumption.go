package sync

import (
	"strings"

	"github.com/ZhehuanUnique/AIGC-Studio/internal/model"
)

// AddConsumption 追加一条消费记录。实耗不做增量累加，
// 每次都按记录合计重算，保证删改后金额一致
func (s *Synchronizer) AddConsumption(teamID string, rec model.ConsumptionRecord) (model.ConsumptionRecord, SyncResult) {
	if strings.TrimSpace(string(rec.Platform)) == "" {
		rec.Platform = model.PlatformOther
	}
	if rec.ID == "" {
		rec.ID = NewID("c")
	}
	result := s.mutateTeam(teamID, func(t *model.Team) error {
		t.ConsumptionRecords = append(t.ConsumptionRecords, rec)
		t.ActualCost = t.RecordTotal()
		return nil
	})
	return rec, result
}

// DeleteConsumption 删除消费记录并重算实耗
func (s *Synchronizer) DeleteConsumption(teamID, recordID string) SyncResult {
	return s.mutateTeam(teamID, func(t *model.Team) error {
		out := t.ConsumptionRecords[:0]
		for _, r := range t.ConsumptionRecords {
			if r.ID != recordID {
				out = append(out, r)
			}
		}
		t.ConsumptionRecords = out
		t.ActualCost = t.RecordTotal()
		return nil
	})
}
