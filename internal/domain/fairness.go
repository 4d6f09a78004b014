package domain

// ComputeFairnessUpdates пересчитывает баллы удачи по итоговому размещению.
//
// Для каждого члена клуба из назначенной заявки (организатор и участники
// группы; гости баллов не имеют) сравнивается окно фактического слота с
// предпочтительным окном заявки: попадание уменьшает балл на FairnessStep,
// промах увеличивает. Результат ограничивается [FairnessFloor, FairnessCeiling].
//
// slotStartMinutes отображает ID заявки в минуту начала ее итогового слота.
// Заявки без записи в slotStartMinutes (нераспределенные) баллы не меняют.
//
// Функция намеренно отделена от движка распределения: она должна уметь
// работать по финальному, возможно вручную переставленному размещению
func ComputeFairnessUpdates(
	entries []*Entry,
	slotStartMinutes map[int64]int,
	windows []PreferenceWindow,
	currentScores map[int64]int,
) map[int64]int {
	updated := make(map[int64]int)

	for _, e := range entries {
		if !e.IsActive() {
			continue
		}

		startMinutes, assigned := slotStartMinutes[e.ID]
		if !assigned {
			continue
		}

		preferred := findWindowByIndex(windows, e.PreferredWindow)
		matched := preferred != nil && preferred.Contains(startMinutes)

		for _, memberID := range e.MemberIDs {
			score, ok := updated[memberID]
			if !ok {
				score = currentScores[memberID]
			}
			if matched {
				score -= FairnessStep
			} else {
				score += FairnessStep
			}
			updated[memberID] = ClampFairness(score)
		}
	}

	return updated
}

func findWindowByIndex(windows []PreferenceWindow, index int) *PreferenceWindow {
	for i := range windows {
		if windows[i].Index == index {
			return &windows[i]
		}
	}
	return nil
}
