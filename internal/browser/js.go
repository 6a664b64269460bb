package browser

const jsVisible = `const visible = (e) => !!(e && e.getClientRects().length);`

const jsByLabel = `(text) => {
	` + jsVisible + `
	for (const l of document.querySelectorAll('label')) {
		if (l.innerText.includes(text) && l.control && visible(l.control)) {
			return l.control;
		}
	}
	for (const e of document.querySelectorAll('[aria-label]')) {
		if (e.getAttribute('aria-label').includes(text) && visible(e)) {
			return e;
		}
	}
	return null;
}`

const jsByAttr = `(attr, text) => {
	` + jsVisible + `
	for (const e of document.querySelectorAll('[' + attr + ']')) {
		if (e.getAttribute(attr).includes(text) && visible(e)) {
			return e;
		}
	}
	return null;
}`

const jsByRole = `(scope, role, name) => {
	` + jsVisible + `
	const landmarks = {
		banner: 'header, [role=banner]',
		navigation: 'nav, [role=navigation]',
		main: 'main, [role=main]',
	};
	const roles = {
		link: 'a[href], [role=link]',
		button: 'button, input[type=submit], input[type=button], input[type=reset], input[type=image], [role=button]',
		textbox: 'input:not([type]), input[type=text], input[type=email], input[type=tel], input[type=number], input[type=search], textarea, [role=textbox]',
	};
	let root = document;
	if (scope) {
		root = document.querySelector(landmarks[scope] || scope);
		if (!root) return null;
	}
	const accessibleName = (e) => {
		const parts = [e.getAttribute('aria-label'), e.innerText, e.value, e.title, e.getAttribute('alt')];
		if (e.labels) {
			for (const l of e.labels) parts.push(l.innerText);
		}
		const img = e.querySelector && e.querySelector('img[alt]');
		if (img) parts.push(img.alt);
		return parts.filter(Boolean).join(' ');
	};
	for (const e of root.querySelectorAll(roles[role] || '[role=' + role + ']')) {
		if (visible(e) && accessibleName(e).includes(name)) {
			return e;
		}
	}
	return null;
}`

const jsInnerTexts = `(selector) => Array.from(document.querySelectorAll(selector)).map((e) => e.innerText)`

const jsHasVisible = `(selector) => Array.from(document.querySelectorAll(selector)).some((e) => e.getClientRects().length > 0)`
